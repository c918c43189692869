package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lcftools/ndaforge/internal/config"
	"github.com/lcftools/ndaforge/internal/core"
	"github.com/lcftools/ndaforge/internal/logging"
	"github.com/lcftools/ndaforge/internal/render"
	"github.com/lcftools/ndaforge/internal/table"
	"github.com/lcftools/ndaforge/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"max_concurrent_runs", cfg.Upload.MaxConcurrentRuns,
		"registry_ttl", cfg.Registry.TTL,
		"soffice", cfg.Convert.SofficePath,
	)

	// Create service with the concrete capability implementations
	service := core.NewService(core.Dependencies{
		Reader:    table.NewExcelReader(),
		Writer:    table.NewExcelWriter(),
		Renderer:  render.NewDocxRenderer(),
		Converter: render.NewPDFConverter(cfg.Convert.SofficePath, cfg.Convert.Timeout),
	}, cfg)

	server := web.NewServer(service, cfg)

	// Cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	// Evict expired archives in the background
	go service.Registry().StartSweeper(jobCtx, cfg.Registry.SweepInterval)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for active batch runs to complete (with timeout)
		if active := service.Limiter().ActiveCount(); active > 0 {
			slog.Info("waiting for batch runs to complete", "active", active)
			if err := service.Limiter().WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("batch runs did not complete in time", "error", err)
			} else {
				slog.Info("all batch runs completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
