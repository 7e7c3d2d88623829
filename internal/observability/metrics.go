package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dataset pipeline and the chart API.
type Metrics struct {
	RowsLoaded   prometheus.Gauge
	RowsRetained prometheus.Gauge
	RowsDropped  *prometheus.CounterVec // labels: reason={duplicate,missing_coordinates}

	LoadDuration  prometheus.Histogram
	CleanDuration prometheus.Histogram
	DatasetLoaded prometheus.Gauge

	ChartRequests *prometheus.CounterVec // labels: chart, outcome={success,no_data,bad_request}
	LoaderCache   *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "irve",
			Name:      "rows_loaded",
			Help:      "Rows in the raw dataset before cleaning.",
		}),
		RowsRetained: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "irve",
			Name:      "rows_retained",
			Help:      "Rows in the clean table after cleaning.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "irve",
			Name:      "rows_dropped_total",
			Help:      "Rows removed by the cleaning pipeline, by reason.",
		}, []string{"reason"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "irve",
			Name:      "load_duration_seconds",
			Help:      "Duration of reading the raw CSV into memory.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		CleanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "irve",
			Name:      "clean_duration_seconds",
			Help:      "Duration of the full cleaning pipeline.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "irve",
			Name:      "dataset_loaded",
			Help:      "1 when a clean table is available to serve, 0 before.",
		}),
		ChartRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "irve",
			Name:      "chart_requests_total",
			Help:      "Chart spec requests by chart and outcome.",
		}, []string{"chart", "outcome"}),
		LoaderCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "irve",
			Name:      "loader_cache_total",
			Help:      "Dataset loader cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.RowsLoaded,
		m.RowsRetained,
		m.RowsDropped,
		m.LoadDuration,
		m.CleanDuration,
		m.DatasetLoaded,
		m.ChartRequests,
		m.LoaderCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsLoaded:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "irve", Name: "rows_loaded"}),
		RowsRetained:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "irve", Name: "rows_retained"}),
		RowsDropped:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "irve", Name: "rows_dropped_total"}, []string{"reason"}),
		LoadDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "irve", Name: "load_duration_seconds"}),
		CleanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "irve", Name: "clean_duration_seconds"}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "irve", Name: "dataset_loaded"}),
		ChartRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "irve", Name: "chart_requests_total"}, []string{"chart", "outcome"}),
		LoaderCache:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "irve", Name: "loader_cache_total"}, []string{"result"}),
	}
}
