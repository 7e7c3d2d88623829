// Package pipeline orchestrates the load→clean flow and owns the resulting
// clean table for the lifetime of the process.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/ArmandColonnaW/irve-insights/internal/domain"
	"github.com/ArmandColonnaW/irve-insights/internal/observability"
)

// Extractor reads the raw table for a source argument.
type Extractor interface {
	Load(ctx context.Context, source string) (dataframe.DataFrame, error)
}

// Pipeline runs the extract→clean sequence once per process and serves the
// immutable result to the API layer. A load failure is terminal: Run returns
// the error and the service must not proceed with partial data.
type Pipeline struct {
	extractor Extractor
	source    string
	logger    *slog.Logger
	metrics   *observability.Metrics

	ready atomic.Bool

	mu     sync.RWMutex
	clean  dataframe.DataFrame
	report domain.Report
}

// New creates a Pipeline over the given extractor and source argument.
func New(extractor Extractor, source string, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		source:    source,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run loads the raw table and cleans it. On success the clean table is held
// in memory, immutable, until the process restarts.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	raw, err := p.extractor.Load(ctx, p.source)
	if err != nil {
		return err
	}
	p.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	p.metrics.RowsLoaded.Set(float64(raw.Nrow()))
	p.logger.Info("dataset loaded", "rows", raw.Nrow(), "columns", raw.Ncol())

	cleanStart := time.Now()
	clean, report := domain.Clean(raw)
	if clean.Err != nil {
		return clean.Err
	}
	p.metrics.CleanDuration.Observe(time.Since(cleanStart).Seconds())
	p.metrics.RowsRetained.Set(float64(report.RowsOut))
	p.metrics.RowsDropped.WithLabelValues("duplicate").Add(float64(report.DuplicatesDropped))
	p.metrics.RowsDropped.WithLabelValues("missing_coordinates").Add(float64(report.CoordinateDrops))

	p.mu.Lock()
	p.clean = clean
	p.report = report
	p.mu.Unlock()

	p.metrics.DatasetLoaded.Set(1)
	p.ready.Store(true)
	p.logger.Info("dataset cleaned",
		"rows_in", report.RowsIn,
		"rows_out", report.RowsOut,
		"duplicates_dropped", report.DuplicatesDropped,
		"coordinate_drops", report.CoordinateDrops,
		"skipped_steps", report.SkippedSteps,
	)
	return nil
}

// CheckReadiness returns nil once a clean table is available to serve.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}

// Table returns the clean table. Callers must treat it as immutable; builders
// and filters already copy rather than mutate.
func (p *Pipeline) Table() dataframe.DataFrame {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.clean
}

// Report returns the cleaning report for the loaded dataset.
func (p *Pipeline) Report() domain.Report {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.report
}
