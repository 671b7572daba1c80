package main

import (
	"log"

	"github.com/alkime/steplever/internal/config"
	"github.com/alkime/steplever/internal/logger"
	"github.com/alkime/steplever/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	slogger := logger.SetupLogger(cfg)

	// Log startup information
	slogger.Info("Starting steplever server",
		"env", cfg.Env,
		"port", cfg.Port,
		"static_dir", cfg.StaticDir,
	)

	srv := server.New(cfg, slogger)

	slogger.Info("Server listening", "port", cfg.Port)

	if err := server.Run(srv); err != nil {
		slogger.Error("Failed to start server", "error", err)
		log.Fatalf("Fatal: %v", err)
	}
}
