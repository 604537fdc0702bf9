// Package main is the entry point for the emoji vending machine.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/emoji-vend/internal/config"
	"github.com/Faultbox/emoji-vend/internal/game"
	"github.com/Faultbox/emoji-vend/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote config to %s\n", path)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logger.Error("game error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("game closed normally")
	logger.Sync()
}

func run(cfg *config.Config) error {
	logger.Info("=== Emoji Vending Machine ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	defer g.Close()

	return g.Run()
}
