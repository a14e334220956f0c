// Package service implements the filter and aggregation layer of the
// dashboard. Every operation is a pure function of the immutable dataset and
// the filter, so repeated queries always yield identical output.
package service

import (
	"context"
	"sort"

	"rankboard/internal/rankings"
	"rankboard/internal/rankings/store"
)

// DefaultHistogramBins matches the dashboard's rank distribution chart.
const DefaultHistogramBins = 50

// Service answers dashboard queries over the loaded dataset.
type Service struct {
	dataset *store.Dataset
}

func New(dataset *store.Dataset) *Service {
	return &Service{dataset: dataset}
}

// Dataset exposes the underlying table for the UI controls (country list,
// rank bounds).
func (s *Service) Dataset() *store.Dataset {
	return s.dataset
}

// Filter returns the records matching f, sorted by global rank ascending and
// truncated to f.Limit when positive. An empty result is valid, not an error.
func (s *Service) Filter(_ context.Context, f rankings.Filter) []rankings.UniversityRecord {
	var out []rankings.UniversityRecord
	for _, rec := range s.dataset.Records() {
		if !f.Matches(rec) {
			continue
		}
		out = append(out, rec)
		// Records are already rank-sorted, so truncation can stop the scan.
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

// Summary computes the metrics panel over the filtered set. The row limit is
// a display truncation and does not narrow aggregates. MeanRank is 0 for an
// empty set.
func (s *Service) Summary(ctx context.Context, f rankings.Filter) rankings.Summary {
	f.Limit = 0
	matched := s.Filter(ctx, f)

	countries := make(map[string]struct{})
	cities := make(map[string]struct{})
	rankSum := 0
	for _, rec := range matched {
		countries[rec.Country] = struct{}{}
		if rec.City != "" {
			cities[rec.City] = struct{}{}
		}
		rankSum += rec.GlobalRank
	}

	sum := rankings.Summary{
		Total:     len(matched),
		Countries: len(countries),
		Cities:    len(cities),
	}
	if sum.Total > 0 {
		sum.MeanRank = float64(rankSum) / float64(sum.Total)
	}
	return sum
}

// TopCountries counts filtered records per country, descending by count with
// name as the tiebreak, truncated to n when positive.
func (s *Service) TopCountries(ctx context.Context, f rankings.Filter, n int) []rankings.GroupCount {
	return s.topGroups(ctx, f, n, func(rec rankings.UniversityRecord) string { return rec.Country })
}

// TopCities counts filtered records per city, skipping records without one.
func (s *Service) TopCities(ctx context.Context, f rankings.Filter, n int) []rankings.GroupCount {
	return s.topGroups(ctx, f, n, func(rec rankings.UniversityRecord) string { return rec.City })
}

func (s *Service) topGroups(ctx context.Context, f rankings.Filter, n int, key func(rankings.UniversityRecord) string) []rankings.GroupCount {
	f.Limit = 0
	counts := make(map[string]int)
	for _, rec := range s.Filter(ctx, f) {
		k := key(rec)
		if k == "" {
			continue
		}
		counts[k]++
	}

	out := make([]rankings.GroupCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, rankings.GroupCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Histogram buckets the filtered ranks into equal-width bins spanning the
// observed [min, max]. The last bin includes its upper edge. An empty
// filtered set yields nil.
func (s *Service) Histogram(ctx context.Context, f rankings.Filter, bins int) []rankings.HistogramBin {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	f.Limit = 0
	matched := s.Filter(ctx, f)
	if len(matched) == 0 {
		return nil
	}

	// matched is rank-sorted, so the bounds are the ends.
	lo := matched[0].GlobalRank
	hi := matched[len(matched)-1].GlobalRank
	span := hi - lo + 1
	if bins > span {
		bins = span
	}
	width := span / bins
	if span%bins != 0 {
		width++
	}

	out := make([]rankings.HistogramBin, bins)
	for i := range out {
		out[i].Lo = lo + i*width
		out[i].Hi = lo + (i+1)*width - 1
	}
	out[bins-1].Hi = hi
	for _, rec := range matched {
		idx := (rec.GlobalRank - lo) / width
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// Clusters counts the filtered records in each excellence bracket.
func (s *Service) Clusters(ctx context.Context, f rankings.Filter) []rankings.Cluster {
	f.Limit = 0
	out := rankings.ClusterDefinitions()
	for _, rec := range s.Filter(ctx, f) {
		for i := range out {
			if rec.GlobalRank < out[i].Lo {
				continue
			}
			if out[i].Hi != 0 && rec.GlobalRank > out[i].Hi {
				continue
			}
			out[i].Count++
			break
		}
	}
	return out
}
