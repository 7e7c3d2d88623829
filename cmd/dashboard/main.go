// Command dashboard serves the IRVE insight API: it loads the consolidated
// charging-point CSV, cleans it once, and exposes chart specifications,
// narrative KPIs, and an xlsx export over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ArmandColonnaW/irve-insights/internal/adapter/httpapi"
	"github.com/ArmandColonnaW/irve-insights/internal/config"
	"github.com/ArmandColonnaW/irve-insights/internal/loader"
	"github.com/ArmandColonnaW/irve-insights/internal/observability"
	"github.com/ArmandColonnaW/irve-insights/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// The cache is owned here, lives for the process, and is invalidated only
	// by restart.
	source := loader.NewCachedSource(
		loader.New(cfg.FetchTimeout, logger),
		cfg.LoaderCacheSize,
		metrics,
	)
	p := pipeline.New(source, cfg.DataSource, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A load failure is terminal: nothing can be served without the dataset.
	if err := p.Run(ctx); err != nil {
		logger.Error("dataset load failed", "source", cfg.DataSource, "error", err)
		os.Exit(1)
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, p, httpapi.Defaults{
		TopN:     cfg.DefaultTopN,
		HistBins: cfg.DefaultHistBins,
	}, metrics, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
