package httptransport

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"rankboard/internal/platform/middleware"
	"rankboard/internal/rankings"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// dashboardData is everything the page template needs for one render.
type dashboardData struct {
	Query        template.URL // raw query string, reused by the chart image URLs
	Countries    []string
	Selected     map[string]bool
	MinRank      int
	MaxRank      int
	Limit        int
	TopN         int
	BoundsMin    int
	BoundsMax    int
	Summary      rankings.Summary
	MeanRank     string
	Records      []rankings.UniversityRecord
	HasResults   bool
	MapAvailable bool
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query, err := parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	summary := h.service.Summary(ctx, query.Filter)
	records := h.service.Filter(ctx, query.Filter)

	selected := make(map[string]bool, len(query.Filter.Countries))
	for _, c := range query.Filter.Countries {
		selected[c] = true
	}

	meanRank := "N/A"
	if summary.Total > 0 {
		meanRank = fmt.Sprintf("%.0f", summary.MeanRank)
	}

	boundsMin, boundsMax := h.dataset.RankBounds()
	data := dashboardData{
		Query:        template.URL(r.URL.RawQuery),
		Countries:    h.dataset.Countries(),
		Selected:     selected,
		MinRank:      query.Filter.MinRank,
		MaxRank:      query.Filter.MaxRank,
		Limit:        query.Filter.Limit,
		TopN:         query.TopN,
		BoundsMin:    boundsMin,
		BoundsMax:    boundsMax,
		Summary:      summary,
		MeanRank:     meanRank,
		Records:      records,
		HasResults:   len(records) > 0,
		MapAvailable: h.worldMap != nil,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		h.logger.ErrorContext(ctx, "render dashboard",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	}
}
