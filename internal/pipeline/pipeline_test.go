package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmandColonnaW/irve-insights/internal/domain"
	"github.com/ArmandColonnaW/irve-insights/internal/observability"
)

type stubExtractor struct {
	frame dataframe.DataFrame
	err   error
}

func (s *stubExtractor) Load(context.Context, string) (dataframe.DataFrame, error) {
	return s.frame, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rawFixture() dataframe.DataFrame {
	return dataframe.LoadRecords([][]string{
		{"id_pdc_itinerance", "consolidated_latitude", "consolidated_longitude", "puissance_nominale"},
		{"FR001", "48.85", "2.35", "36"},
		{"FR001", "48.85", "2.35", "36"},
		{"FR002", "", "4.83", "150"},
		{"FR003", "45.76", "4.83", "150"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
}

func TestPipelineRun(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	p := New(&stubExtractor{frame: rawFixture()}, "irve.csv", quietLogger(), metrics)

	require.Error(t, p.CheckReadiness(context.Background()), "not ready before Run")

	require.NoError(t, p.Run(context.Background()))
	require.NoError(t, p.CheckReadiness(context.Background()))

	clean := p.Table()
	assert.Equal(t, 2, clean.Nrow())
	assert.Contains(t, clean.Names(), domain.ColCategory)

	report := p.Report()
	assert.Equal(t, 4, report.RowsIn)
	assert.Equal(t, 2, report.RowsOut)
	assert.Equal(t, 1, report.DuplicatesDropped)
	assert.Equal(t, 1, report.CoordinateDrops)

	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.RowsLoaded))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RowsRetained))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RowsDropped.WithLabelValues("duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RowsDropped.WithLabelValues("missing_coordinates")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DatasetLoaded))
}

func TestPipelineRunLoadFailure(t *testing.T) {
	p := New(&stubExtractor{err: errors.New("fetch failed")},
		"irve.csv", quietLogger(), observability.NewMetricsForTesting())

	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Error(t, p.CheckReadiness(context.Background()), "a failed run never becomes ready")
}
