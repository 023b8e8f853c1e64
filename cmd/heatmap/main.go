// Command heatmap fetches the global land-surface temperature dataset and
// writes it as a self-contained HTML heat map. It is configured entirely
// through environment variables; see internal/config.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/couchcryptid/temperature-heatmap/internal/adapter/page"
	"github.com/couchcryptid/temperature-heatmap/internal/adapter/refdata"
	"github.com/couchcryptid/temperature-heatmap/internal/config"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
	"github.com/couchcryptid/temperature-heatmap/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	loader := refdata.NewClient(cfg.DataURL, cfg.FetchTimeout, metrics, logger)

	var sink pipeline.Sink = page.FileSink{Path: cfg.OutputPath}
	if cfg.OutputPath == config.Stdout {
		sink = page.WriterSink{W: os.Stdout}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Debug("starting", "url", cfg.DataURL, "output", cfg.OutputPath, "fetch_timeout", cfg.FetchTimeout)

	// Run logs its own failure; exit without a second entry.
	runErr := pipeline.New(loader, sink, logger, metrics).Run(ctx)

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile, prometheus.DefaultGatherer); err != nil {
			logger.Warn("write metrics textfile failed", "path", cfg.MetricsTextfile, "error", err)
		}
	}

	if runErr != nil {
		return 1
	}
	return 0
}
