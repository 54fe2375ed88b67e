package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/delta-iot/pingwatch/internal/config"
	httpapi "github.com/delta-iot/pingwatch/internal/http"
	"github.com/delta-iot/pingwatch/internal/logging"
	"github.com/delta-iot/pingwatch/internal/services/ingest"
	"github.com/delta-iot/pingwatch/internal/services/status"
	"github.com/delta-iot/pingwatch/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.Debug)

	if err := os.MkdirAll(cfg.DBDir(), 0o755); err != nil {
		logger.Error("failed to create db directory", "dir", cfg.DBDir(), "err", err)
		os.Exit(1)
	}

	store, err := storage.New(ctx, cfg.DBPath, cfg.QueryTimeout, logger)
	if err != nil {
		logger.Error("failed to initialize ping store", "path", cfg.DBPath, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	api := httpapi.New(
		ingest.New(store, logger),
		status.NewService(store, cfg.Thresholds, logger),
		store,
		logger,
		cfg.FeedInterval,
	)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("server starting", "addr", httpServer.Addr, "db", cfg.DBPath)
	if err := httpapi.RunServer(ctx, httpServer, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server terminated with error", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
