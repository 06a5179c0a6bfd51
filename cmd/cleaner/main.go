package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/clearlist-hq/clearlist-verifier/internal/app"
	"github.com/clearlist-hq/clearlist-verifier/internal/config"
	"github.com/clearlist-hq/clearlist-verifier/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cleaner start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("cleaner starting", "config", map[string]any{
		"app_name":   cfg.AppName,
		"app_env":    cfg.Env,
		"lists_file": cfg.ListsFile,
		"sinks_file": cfg.SinksFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cleaner, err := app.NewCleaner(ctx, cfg, logger.ZapLogger{})
	if err != nil {
		logger.ErrorObj("failed to initialize cleaner", "error", err)
		return err
	}

	if err := cleaner.Run(ctx); err != nil {
		return fmt.Errorf("cleaner run: %w", err)
	}

	return nil
}
