// Package httptransport is the thin HTTP layer of the dashboard. It parses
// filter parameters, delegates to the rankings service, and hands aggregates
// to the chart renderer; no business logic lives here.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rankboard/internal/charts"
	"rankboard/internal/platform/metrics"
	"rankboard/internal/platform/middleware"
	"rankboard/internal/rankings"
	"rankboard/internal/rankings/store"
	"rankboard/pkg/domainerrors"
)

// Service defines the query operations the transport depends on.
type Service interface {
	Filter(ctx context.Context, f rankings.Filter) []rankings.UniversityRecord
	Summary(ctx context.Context, f rankings.Filter) rankings.Summary
	TopCountries(ctx context.Context, f rankings.Filter, n int) []rankings.GroupCount
	TopCities(ctx context.Context, f rankings.Filter, n int) []rankings.GroupCount
	Histogram(ctx context.Context, f rankings.Filter, bins int) []rankings.HistogramBin
	Clusters(ctx context.Context, f rankings.Filter) []rankings.Cluster
}

// Handler serves the dashboard page, the JSON APIs, and the chart images.
type Handler struct {
	logger   *slog.Logger
	service  Service
	dataset  *store.Dataset
	renderer *charts.Renderer
	worldMap *charts.WorldMap // nil when boundary data is unavailable
	metrics  *metrics.Metrics
}

// New creates the dashboard handler. worldMap may be nil; only the map
// endpoint degrades in that case.
func New(
	service Service,
	dataset *store.Dataset,
	renderer *charts.Renderer,
	worldMap *charts.WorldMap,
	logger *slog.Logger,
	m *metrics.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		dataset:  dataset,
		renderer: renderer,
		worldMap: worldMap,
		metrics:  m,
	}
}

// Register mounts all dashboard routes with the shared middleware chain.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))

	router.Get("/", h.handleDashboard)
	router.Get("/api/universities", h.handleUniversities)
	router.Get("/api/summary", h.handleSummary)
	router.Get("/api/countries", h.handleCountries)
	router.Get("/charts/map.png", h.handleMapChart)
	router.Get("/charts/countries.png", h.handleCountriesChart)
	router.Get("/charts/cities.png", h.handleCitiesChart)
	router.Get("/charts/ranks.png", h.handleRanksChart)
	router.Get("/charts/clusters.png", h.handleClustersChart)
	router.Get("/export.xlsx", h.handleExport)
	router.Get("/healthz", h.handleHealthz)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Mount("/", router)
}

func (h *Handler) handleUniversities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query, err := parseQuery(r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid filter query",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}

	start := time.Now()
	records := h.service.Filter(ctx, query.Filter)
	h.metrics.ObserveQuery(time.Since(start).Seconds())

	// Empty results are a valid state, not an error.
	if records == nil {
		records = []rankings.UniversityRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"universities": records,
		"count":        len(records),
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query, err := parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	summary := h.service.Summary(ctx, query.Filter)
	h.metrics.ObserveQuery(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleCountries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query, err := parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	counts := h.service.TopCountries(ctx, query.Filter, 0)
	writeJSON(w, http.StatusOK, map[string]any{
		"countries": h.dataset.Countries(),
		"counts":    counts,
	})
}

func (h *Handler) handleMapChart(w http.ResponseWriter, r *http.Request) {
	if h.worldMap == nil {
		writeError(w, domainerrors.New(domainerrors.CodeUnavailable, "map boundary data unavailable"))
		return
	}
	ctx := r.Context()
	query, err := parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	counts := make(map[string]int)
	for _, gc := range h.service.TopCountries(ctx, query.Filter, 0) {
		counts[gc.Label] = gc.Count
	}
	img, err := h.worldMap.Render(counts)
	h.writeChart(w, r, "map", img, err)
}

func (h *Handler) handleCountriesChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query, err := parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	groups := h.service.TopCountries(ctx, query.Filter, query.TopN)
	img, err := h.renderer.TopCountriesBar(groups)
	h.writeChart(w, r, "countries", img, err)
}

func (h *Handler) handleCitiesChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query, err := parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	groups := h.service.TopCities(ctx, query.Filter, query.TopN)
	img, err := h.renderer.TopCitiesBar(groups)
	h.writeChart(w, r, "cities", img, err)
}

func (h *Handler) handleRanksChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query, err := parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	bins := h.service.Histogram(ctx, query.Filter, 0)
	img, err := h.renderer.RankHistogram(bins)
	h.writeChart(w, r, "ranks", img, err)
}

func (h *Handler) handleClustersChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query, err := parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	clusters := h.service.Clusters(ctx, query.Filter)
	img, err := h.renderer.ClusterBar(clusters)
	h.writeChart(w, r, "clusters", img, err)
}

func (h *Handler) writeChart(w http.ResponseWriter, r *http.Request, kind string, img []byte, err error) {
	if err != nil {
		h.metrics.RenderFailures.WithLabelValues(kind).Inc()
		h.logger.ErrorContext(r.Context(), "chart render failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"chart", kind,
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}
	h.metrics.ChartRenders.WithLabelValues(kind).Inc()
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": h.dataset.Len(),
	})
}
