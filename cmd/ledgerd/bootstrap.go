package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"ledger/internal/api"
	"ledger/internal/config"
	"ledger/internal/daemon"
	"ledger/internal/delivery"
	"ledger/internal/labels"
	"ledger/internal/logging"
	"ledger/internal/store"
)

// run starts the daemon and blocks until ctx is cancelled.
func run(ctx context.Context, configPath string) error {
	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if !exists {
		logger.Warn("config file not found; using defaults", logging.String("path", resolved))
	}

	d, err := buildDaemon(cfg, logger)
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	<-ctx.Done()
	logger.Info("ledgerd shutting down")
	return nil
}

func buildDaemon(cfg *config.Config, logger *slog.Logger) (*daemon.Daemon, error) {
	gin.SetMode(gin.ReleaseMode)

	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	assembler, err := labels.NewAssembler(cfg, logger)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	sink, err := delivery.New(cfg, logger)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	d, err := daemon.New(cfg, st, api.NewShipmentService(st, assembler, sink, logger), logger)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return d, nil
}
