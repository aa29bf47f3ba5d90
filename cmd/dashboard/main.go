package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/adapter/csvsource"
	httpadapter "github.com/couchcryptid/bike-sharing-dashboard/internal/adapter/http"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/config"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/dashboard"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/observability"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger, observability.NewMetrics())
	stop()
	if err != nil {
		logger.Error("dashboard stopped", "error", err)
		os.Exit(1)
	}
}

// run serves the dashboard until ctx is cancelled. Startup failures are
// returned before the server listens.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	ds, err := csvsource.Load(cfg.DataPath)
	if err != nil {
		return err
	}

	dash := dashboard.New(ds, logger, metrics)
	replace := func(ds *domain.Dataset) {
		dash.Replace(ds)
		metrics.DatasetReloads.WithLabelValues("success").Inc()
	}
	reloadFailed := func(error) { metrics.DatasetReloads.WithLabelValues("error").Inc() }

	// Hot reload (feature-flagged via DATA_WATCH).
	var watcher *csvsource.Watcher
	if cfg.DataWatch {
		watcher, err = csvsource.NewWatcher(cfg.DataPath, logger, reloadFailed)
		if err != nil {
			return fmt.Errorf("watch dataset %s: %w", cfg.DataPath, err)
		}
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Error("dataset watcher close error", "error", err)
			}
		}()
	}

	// Periodic reload (feature-flagged via DATA_RELOAD_SCHEDULE).
	var scheduler *csvsource.Scheduler
	if cfg.DataSchedule != "" {
		scheduler, err = csvsource.NewScheduler(cfg.DataPath, cfg.DataSchedule, logger, replace, reloadFailed)
		if err != nil {
			return fmt.Errorf("schedule dataset reloads: %w", err)
		}
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, dash, metrics, httpadapter.Options{
		Page: render.PageOptions{
			Title:  cfg.Title,
			Credit: cfg.Credit,
			Locale: cfg.NumberLocale,
		},
		LogoPath: cfg.LogoPath,
	}, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start HTTP server.
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			cancel()
		}
	}()

	if watcher != nil {
		logger.Info("dataset hot reload enabled", "path", cfg.DataPath)
		go func() {
			if err := watcher.Run(ctx, replace); err != nil {
				logger.Error("dataset watcher error", "error", err)
			}
		}()
	}
	if scheduler != nil {
		scheduler.Start()
		defer scheduler.Stop()
		logger.Info("scheduled dataset reload enabled", "schedule", cfg.DataSchedule)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	default:
		logger.Info("shutdown complete")
		return nil
	}
}
