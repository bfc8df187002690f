// cmd/activities-server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mergington-activities/internal/common/config"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/observability"
	"mergington-activities/internal/registry"
	"mergington-activities/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting activities service...",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)
	if err != nil {
		zapLog.Warn("config load failed, using defaults", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// --- Seed the registry ---
	var seed *registry.SeedDocument
	if cfg.Registry.SeedPath != "" {
		seed, err = registry.LoadSeedFile(cfg.Registry.SeedPath)
	} else {
		seed, err = registry.LoadSeed()
	}
	if err != nil {
		zapLog.Fatal("seed load failed", zap.Error(err))
	}

	reg := registry.New(
		&registry.Config{EnforceCapacity: cfg.Registry.EnforceCapacity},
		seed,
		log,
	)
	zapLog.Info("activity registry seeded", zap.Int("activities", len(seed.Activities)))

	srv := server.New(
		&server.Config{
			Address:         cfg.Server.Address,
			ReadTimeout:     time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
			WriteTimeout:    time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
			ShutdownTimeout: time.Duration(cfg.Server.ShutdownTimeout) * time.Millisecond,
			MetricsEnabled:  cfg.Metrics.Enabled,
		},
		reg, obs, log,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zapLog.Fatal("http server failed", zap.Error(err))
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received, draining requests...", zap.String("signal", sig.String()))
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		zapLog.Error("Error shutting down server", zap.Error(err))
	}

	zapLog.Info("Activities service stopped gracefully")
}
