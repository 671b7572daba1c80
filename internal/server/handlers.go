package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alkime/steplever/internal/lever"
	"github.com/alkime/steplever/pkg/vec3"
	"github.com/gin-gonic/gin"
)

type createLeverRequest struct {
	Name   string        `json:"name" binding:"required"`
	Config *lever.Config `json:"config"`
}

type grabRequest struct {
	Actor string `json:"actor"`
}

type valueRequest struct {
	Step *int `json:"step" binding:"required"`
}

func (s *Server) handleListLevers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"levers": s.registry.States()})
}

func (s *Server) handleCreateLever(c *gin.Context) {
	var req createLeverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := s.config.LeverDefaults()
	if req.Config != nil {
		cfg = *req.Config
	}

	host, err := s.registry.Create(req.Name, cfg)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrLeverExists) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info("Created lever", "name", req.Name, "steps", host.Config().StepCount)
	c.JSON(http.StatusCreated, host.State())
}

func (s *Server) handleGetLever(c *gin.Context) {
	host, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, host.State())
}

func (s *Server) handleDeleteLever(c *gin.Context) {
	name := c.Param("name")
	if err := s.registry.Remove(name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info("Removed lever", "name", name)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleConfigureLever(c *gin.Context) {
	host, ok := s.lookup(c)
	if !ok {
		return
	}

	// Start from the active configuration so requests may send only the
	// fields they change.
	cfg := host.Config()
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := host.Configure(cfg)
	if err != nil {
		// The lever keeps running on its previous configuration.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "state": state})
		return
	}

	s.logger.Info("Reconfigured lever", "name", host.Name(), "steps", state.Config.StepCount)
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleGrabLever(c *gin.Context) {
	host, ok := s.lookup(c)
	if !ok {
		return
	}

	var req grabRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Actor == "" {
		req.Actor = c.ClientIP()
	}

	state, err := host.Grab(lever.ActorID(req.Actor))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "state": state})
		return
	}

	s.logger.Debug("Lever grabbed", "name", host.Name(), "actor", req.Actor)
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleReleaseLever(c *gin.Context) {
	host, ok := s.lookup(c)
	if !ok {
		return
	}

	state := host.Release()
	s.logger.Debug("Lever released", "name", host.Name(), "step", state.Step)
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleTrackLever(c *gin.Context) {
	host, ok := s.lookup(c)
	if !ok {
		return
	}

	var pointer vec3.Vector
	if err := c.ShouldBindJSON(&pointer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, host.Track(pointer))
}

func (s *Server) handleSetValue(c *gin.Context) {
	host, ok := s.lookup(c)
	if !ok {
		return
	}

	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, host.SetValue(*req.Step))
}

func (s *Server) handleEvents(c *gin.Context) {
	host, ok := s.lookup(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	events := host.Events(limit)
	if events == nil {
		events = []lever.Transition{}
	}

	c.JSON(http.StatusOK, gin.H{"name": host.Name(), "events": events})
}

// lookup resolves the :name route parameter, replying 404 on a miss.
func (s *Server) lookup(c *gin.Context) (*Host, bool) {
	host, err := s.registry.Get(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return host, true
}
