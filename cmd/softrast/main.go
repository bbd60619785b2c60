// Package main is the entry point for the softrast viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/softrast/internal/app"
	"github.com/Faultbox/softrast/internal/config"
	"github.com/Faultbox/softrast/internal/logger"
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

	logger.Info("=== softrast ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}

	if config.Headless() {
		res, err := v.Offline(ctx, app.OfflineOptions{
			Frames:   cfg.Output.Frames,
			Dir:      cfg.Output.Dir,
			Prefix:   cfg.Output.Prefix,
			Format:   cfg.Output.Format,
			HUD:      cfg.Output.HUD,
			Progress: true,
			Writers:  4,
		})
		if err != nil {
			logger.Error("render failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("frames written", zap.Int("files", len(res.Files)))
		return
	}

	if err := v.Run(ctx); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
