package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/adapter/page"
	"github.com/couchcryptid/temperature-heatmap/internal/chart"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

// Loader fetches the dataset to chart.
type Loader interface {
	Load(ctx context.Context) (domain.Dataset, error)
}

// Sink stores a finished page.
type Sink interface {
	Save(page []byte) error
}

// Pipeline runs one load-render-save pass.
type Pipeline struct {
	loader  Loader
	sink    Sink
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(l Loader, s Sink, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		loader:  l,
		sink:    s,
		logger:  logger,
		metrics: metrics,
	}
}

// Run loads the dataset, renders the page and saves it. Every failure is
// logged exactly once here and returned; nothing reaches the sink unless the
// whole page rendered.
func (p *Pipeline) Run(ctx context.Context) error {
	ds, err := p.loader.Load(ctx)
	if err != nil {
		p.logger.Error("error fetching the data", "error", err)
		return fmt.Errorf("load dataset: %w", err)
	}

	start := time.Now()
	c := chart.Build(ds)

	var buf bytes.Buffer
	if err := page.Write(&buf, c); err != nil {
		p.logger.Error("render page failed", "error", err)
		return fmt.Errorf("render page: %w", err)
	}
	p.metrics.RenderDuration.Observe(time.Since(start).Seconds())

	if err := p.sink.Save(buf.Bytes()); err != nil {
		p.logger.Error("save page failed", "error", err)
		return fmt.Errorf("save page: %w", err)
	}

	p.metrics.CellsRendered.Set(float64(len(c.Cells)))
	p.metrics.LastSuccess.Set(float64(c.GeneratedAt.Unix()))

	first, last := ds.YearSpan()
	p.logger.Info("heat map rendered",
		"cells", len(c.Cells),
		"first_year", first,
		"last_year", last,
		"bytes", buf.Len(),
	)
	return nil
}
