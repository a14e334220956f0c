package httptransport

import (
	"net/http"
	"strconv"
	"strings"

	"rankboard/internal/rankings"
	"rankboard/pkg/domainerrors"
)

// defaultTopN matches the dashboard's default "entries to display" control.
const defaultTopN = 10

// Query carries the parsed filter plus the top-N control for the group
// charts, which is a chart parameter rather than a row filter.
type Query struct {
	Filter rankings.Filter
	TopN   int
}

// parseQuery reads the shared filter parameters:
//
//	countries  repeated or comma-separated country names ("" entries dropped)
//	min_rank   inclusive lower rank bound (>= 1)
//	max_rank   inclusive upper rank bound (0 = unbounded)
//	limit      maximum number of rows returned (0 = unlimited)
//	top        number of entries in the top-countries/cities charts
func parseQuery(r *http.Request) (Query, error) {
	q := r.URL.Query()

	var countries []string
	for _, raw := range q["countries"] {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				countries = append(countries, c)
			}
		}
	}

	minRank, err := intParam(q.Get("min_rank"), 0)
	if err != nil {
		return Query{}, domainerrors.Newf(domainerrors.CodeBadRequest, "min_rank: %v", err)
	}
	maxRank, err := intParam(q.Get("max_rank"), 0)
	if err != nil {
		return Query{}, domainerrors.Newf(domainerrors.CodeBadRequest, "max_rank: %v", err)
	}
	limit, err := intParam(q.Get("limit"), 0)
	if err != nil {
		return Query{}, domainerrors.Newf(domainerrors.CodeBadRequest, "limit: %v", err)
	}
	topN, err := intParam(q.Get("top"), defaultTopN)
	if err != nil {
		return Query{}, domainerrors.Newf(domainerrors.CodeBadRequest, "top: %v", err)
	}

	if maxRank > 0 && minRank > maxRank {
		return Query{}, domainerrors.Newf(domainerrors.CodeBadRequest,
			"min_rank %d exceeds max_rank %d", minRank, maxRank)
	}
	if topN == 0 {
		topN = defaultTopN
	}

	return Query{
		Filter: rankings.Filter{
			Countries: countries,
			MinRank:   minRank,
			MaxRank:   maxRank,
			Limit:     limit,
		},
		TopN: topN,
	}, nil
}

type paramError string

func (e paramError) Error() string { return string(e) }

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, paramError("not an integer")
	}
	if v < 0 {
		return 0, paramError("must not be negative")
	}
	return v, nil
}
