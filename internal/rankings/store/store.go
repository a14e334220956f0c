// Package store holds the loaded dataset. It is built once at startup and
// immutable afterwards, which is what makes the whole dashboard safe for
// concurrent readers without locking.
package store

import (
	"sort"

	"rankboard/internal/rankings"
)

// Dataset is the read-only rankings table plus the precomputed values the
// sidebar controls need (country list, rank bounds).
type Dataset struct {
	records   []rankings.UniversityRecord
	countries []string
	minRank   int
	maxRank   int
}

// New sorts the records by global rank ascending (stable, so input order
// breaks ties) and precomputes the distinct country list.
func New(records []rankings.UniversityRecord) *Dataset {
	sorted := make([]rankings.UniversityRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GlobalRank < sorted[j].GlobalRank
	})

	seen := make(map[string]struct{})
	var countries []string
	minRank, maxRank := 0, 0
	for _, rec := range sorted {
		if _, ok := seen[rec.Country]; !ok {
			seen[rec.Country] = struct{}{}
			countries = append(countries, rec.Country)
		}
		if minRank == 0 || rec.GlobalRank < minRank {
			minRank = rec.GlobalRank
		}
		if rec.GlobalRank > maxRank {
			maxRank = rec.GlobalRank
		}
	}
	sort.Strings(countries)

	return &Dataset{
		records:   sorted,
		countries: countries,
		minRank:   minRank,
		maxRank:   maxRank,
	}
}

// Records returns the rank-sorted table. Callers must treat it as read-only.
func (d *Dataset) Records() []rankings.UniversityRecord {
	return d.records
}

// Countries returns the sorted distinct country list.
func (d *Dataset) Countries() []string {
	return d.countries
}

// RankBounds returns the smallest and largest rank in the dataset.
func (d *Dataset) RankBounds() (min, max int) {
	return d.minRank, d.maxRank
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}
