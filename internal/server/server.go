package server

import (
	"log/slog"
	"net/http"

	"github.com/alkime/steplever/internal/config"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// Server hosts levers over HTTP.
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	router   *gin.Engine
	registry *Registry
}

// New creates a new Server instance.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	// Set Gin mode based on environment
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		config:   cfg,
		logger:   logger,
		router:   router,
		registry: NewRegistry(cfg.HistorySize),
	}

	// Setup middleware and routes
	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Registry exposes the lever registry, mainly for tests and seeding.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Run starts the HTTP server.
func Run(s *Server) error {
	s.logger.Info("Server listening", "port", s.config.Port)
	return s.router.Run(":" + s.config.Port)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	{
		api.GET("/levers", s.handleListLevers)
		api.POST("/levers", s.handleCreateLever)
		api.GET("/levers/:name", s.handleGetLever)
		api.DELETE("/levers/:name", s.handleDeleteLever)
		api.PUT("/levers/:name/config", s.handleConfigureLever)
		api.POST("/levers/:name/grab", s.handleGrabLever)
		api.POST("/levers/:name/release", s.handleReleaseLever)
		api.POST("/levers/:name/track", s.handleTrackLever)
		api.PUT("/levers/:name/value", s.handleSetValue)
		api.GET("/levers/:name/events", s.handleEvents)
		api.GET("/levers/:name/stream", s.handleStream)
	}

	// Serve the dashboard from the configured static directory.
	s.router.Use(static.Serve("/", static.LocalFile(s.config.StaticDir, false)))
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "steplever",
		"levers":  len(s.registry.Names()),
	})
}
