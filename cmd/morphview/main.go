// Package main is the entry point for the pointmorph viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lumenforge/pointmorph/internal/config"
	"github.com/lumenforge/pointmorph/internal/logger"
	"github.com/lumenforge/pointmorph/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== pointmorph viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	// Create and run viewer
	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	// Run the main loop
	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
