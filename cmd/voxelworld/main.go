// Package main is the entry point for the voxelworld headless runner.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/voxelworld/internal/config"
	"github.com/Faultbox/voxelworld/internal/game"
	"github.com/Faultbox/voxelworld/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Default(cfg.Logging.Level, cfg.Logging.LogFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("run failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("voxelworld exited normally")
	_ = log.Sync()
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("=== voxelworld ===")
	log.Debug("config", zap.Any("config", cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := game.New(cfg, log)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	defer g.Close()

	return g.Run(ctx)
}
