// Package httpapi exposes the chart builders and narrative generators over
// HTTP. Every chart endpoint returns a declarative chart specification as
// JSON; rendering, widgets, and layout belong to whichever presentation layer
// consumes the API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ArmandColonnaW/irve-insights/internal/chart"
	"github.com/ArmandColonnaW/irve-insights/internal/domain"
	"github.com/ArmandColonnaW/irve-insights/internal/export"
	"github.com/ArmandColonnaW/irve-insights/internal/narrative"
	"github.com/ArmandColonnaW/irve-insights/internal/observability"
)

// DataSource serves the immutable clean table and its cleaning report.
type DataSource interface {
	CheckReadiness(ctx context.Context) error
	Table() dataframe.DataFrame
	Report() domain.Report
}

// Defaults are applied when a chart request omits a parameter.
type Defaults struct {
	TopN     int
	HistBins int
}

// Server exposes the chart API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	data       DataSource
	defaults   Defaults
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer wires all routes onto a mux with conservative timeouts.
func NewServer(addr string, data DataSource, defaults Defaults, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		data:     data,
		defaults: defaults,
		metrics:  metrics,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/dataset", s.handleDataset)
	mux.HandleFunc("GET /api/narrative", s.handleNarrative)
	mux.HandleFunc("GET /api/export.xlsx", s.handleExport)

	mux.HandleFunc("GET /api/charts/map", s.chartHandler("map", s.buildMap))
	mux.HandleFunc("GET /api/charts/installations", s.chartHandler("installations", s.buildInstallations))
	mux.HandleFunc("GET /api/charts/top-operators", s.chartHandler("top_operators", s.buildTopColumn(domain.ColOperator)))
	mux.HandleFunc("GET /api/charts/top-municipalities", s.chartHandler("top_municipalities", s.buildTopColumn(domain.ColMunicipality)))
	mux.HandleFunc("GET /api/charts/power-mix", s.chartHandler("power_mix", s.buildPowerMix))
	mux.HandleFunc("GET /api/charts/power-histogram", s.chartHandler("power_histogram", s.buildPowerHistogram))
	mux.HandleFunc("GET /api/charts/missingness", s.chartHandler("missingness", s.buildMissingness))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.data.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// datasetResponse summarizes the loaded dataset and what cleaning did to it.
type datasetResponse struct {
	Columns []string                `json:"columns"`
	Rows    int                     `json:"rows"`
	Story   narrative.CleaningStory `json:"cleaning"`
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	if !s.requireReady(w, r) {
		return
	}
	df := s.data.Table()
	writeJSON(w, http.StatusOK, datasetResponse{
		Columns: df.Names(),
		Rows:    df.Nrow(),
		Story:   narrative.BuildCleaningStory(s.data.Report()),
	})
}

// narrativeResponse bundles the story figures for the current view.
type narrativeResponse struct {
	Overview    narrative.Overview      `json:"overview"`
	Operators   *narrative.Operators    `json:"operators,omitempty"`
	Growth      narrative.GrowthSignal  `json:"growth"`
	GrowthRatio float64                 `json:"growth_ratio"`
	Cleaning    narrative.CleaningStory `json:"cleaning"`
}

func (s *Server) handleNarrative(w http.ResponseWriter, r *http.Request) {
	if !s.requireReady(w, r) {
		return
	}
	df, err := s.filteredView(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	resp := narrativeResponse{
		Overview: narrative.BuildOverview(df),
		Cleaning: narrative.BuildCleaningStory(s.data.Report()),
	}
	if ops, ok := narrative.BuildOperators(df); ok {
		resp.Operators = &ops
	}
	resp.Growth, resp.GrowthRatio = narrative.Growth(df)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !s.requireReady(w, r) {
		return
	}
	df, err := s.filteredView(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="irve_clean.xlsx"`)
	if err := export.WriteXLSX(df, w); err != nil {
		s.logger.Error("xlsx export failed", "error", err)
	}
}

// chartBuilder produces a chart spec from the filtered view and raw query
// parameters.
type chartBuilder func(df dataframe.DataFrame, q url.Values) (any, error)

// chartHandler wraps a builder with the shared request flow: readiness gate,
// filter parsing, builder dispatch, and outcome accounting. A missing-column
// error from a builder is the documented "no data" case, not a server fault.
func (s *Server) chartHandler(name string, build chartBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.requireReady(w, r) {
			return
		}

		q := r.URL.Query()
		df, err := s.filteredView(q)
		if err != nil {
			s.metrics.ChartRequests.WithLabelValues(name, "bad_request").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		spec, err := build(df, q)
		var missing *chart.MissingColumnError
		switch {
		case errors.As(err, &missing):
			s.metrics.ChartRequests.WithLabelValues(name, "no_data").Inc()
			writeJSON(w, http.StatusNotFound, map[string]string{
				"status": "no data",
				"column": missing.Column,
			})
		case err != nil:
			s.metrics.ChartRequests.WithLabelValues(name, "bad_request").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			s.metrics.ChartRequests.WithLabelValues(name, "success").Inc()
			writeJSON(w, http.StatusOK, spec)
		}
	}
}

func (s *Server) buildMap(df dataframe.DataFrame, _ url.Values) (any, error) {
	return chart.Map(df, []string{domain.ColOperator, domain.ColInstaller, domain.ColMunicipality})
}

func (s *Server) buildInstallations(df dataframe.DataFrame, q url.Values) (any, error) {
	freq := chart.Yearly
	if v := q.Get("freq"); v != "" {
		freq = chart.Frequency(v)
	}
	return chart.Installations(df, freq)
}

func (s *Server) buildTopColumn(column string) chartBuilder {
	return func(df dataframe.DataFrame, q url.Values) (any, error) {
		n, err := intParam(q, "n", s.defaults.TopN)
		if err != nil {
			return nil, err
		}
		return chart.TopEntities(df, column, n)
	}
}

func (s *Server) buildPowerMix(df dataframe.DataFrame, _ url.Values) (any, error) {
	return chart.PowerMix(df)
}

func (s *Server) buildPowerHistogram(df dataframe.DataFrame, q url.Values) (any, error) {
	bins, err := intParam(q, "bins", s.defaults.HistBins)
	if err != nil {
		return nil, err
	}
	return chart.Histogram(df, domain.ColPower, bins)
}

func (s *Server) buildMissingness(df dataframe.DataFrame, q url.Values) (any, error) {
	n, err := intParam(q, "n", s.defaults.TopN)
	if err != nil {
		return nil, err
	}
	return chart.Missingness(df, n), nil
}

// filteredView applies the shared filter query parameters to the clean table,
// yielding the transient per-request subset every endpoint works on.
func (s *Server) filteredView(q url.Values) (dataframe.DataFrame, error) {
	f := domain.Filter{
		Categories: q["category"],
		Operators:  q["operator"],
		Commune:    q.Get("commune"),
	}
	if v := q.Get("min_kw"); v != "" {
		kw, err := strconv.ParseFloat(v, 64)
		if err != nil || kw < 0 {
			return dataframe.DataFrame{}, errors.New("invalid min_kw")
		}
		f.MinPowerKW = kw
	}
	var err error
	if f.YearFrom, err = yearParam(q, "year_from"); err != nil {
		return dataframe.DataFrame{}, err
	}
	if f.YearTo, err = yearParam(q, "year_to"); err != nil {
		return dataframe.DataFrame{}, err
	}
	return f.Apply(s.data.Table()), nil
}

func (s *Server) requireReady(w http.ResponseWriter, r *http.Request) bool {
	if err := s.data.CheckReadiness(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return false
	}
	return true
}

func intParam(q url.Values, key string, fallback int) (int, error) {
	v := q.Get(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}

func yearParam(q url.Values, key string) (int, error) {
	v := q.Get(key)
	if v == "" {
		return 0, nil
	}
	y, err := strconv.Atoi(v)
	if err != nil || y < 0 {
		return 0, errors.New("invalid " + key)
	}
	return y, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
