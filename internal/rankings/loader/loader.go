// Package loader reads the rankings CSV into memory. Loading is single-shot
// and fail-fast: any schema or value problem aborts with a coded error, there
// is no partial-load recovery.
package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"rankboard/internal/rankings"
	"rankboard/pkg/domainerrors"
)

// Column indices resolved from the header row.
type columns struct {
	name    int
	country int
	city    int
	rank    int
}

// Load parses the CSV at path into records. The header must carry the
// University, Country, City and Global Rank columns (case, spacing, and
// underscores are ignored; extra columns are tolerated).
func Load(path string) ([]rankings.UniversityRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeLoadFailed, "open rankings file", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) ([]rankings.UniversityRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // header decides; we index columns ourselves
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, domainerrors.New(domainerrors.CodeLoadFailed, "rankings file is empty")
	}
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeLoadFailed, "read header", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []rankings.UniversityRecord
	row := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, domainerrors.Newf(domainerrors.CodeLoadFailed, "row %d: malformed CSV: %v", row, err)
		}
		if isBlank(rec) {
			continue
		}
		parsed, err := parseRow(rec, cols, row)
		if err != nil {
			return nil, err
		}
		records = append(records, parsed)
	}
	if len(records) == 0 {
		return nil, domainerrors.New(domainerrors.CodeLoadFailed, "rankings file has no data rows")
	}
	return records, nil
}

func parseRow(rec []string, cols columns, row int) (rankings.UniversityRecord, error) {
	get := func(i int) string {
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	name := get(cols.name)
	country := get(cols.country)
	if name == "" {
		return rankings.UniversityRecord{}, domainerrors.Newf(domainerrors.CodeLoadFailed, "row %d: empty university name", row)
	}
	if country == "" {
		return rankings.UniversityRecord{}, domainerrors.Newf(domainerrors.CodeLoadFailed, "row %d: empty country", row)
	}

	rankText := get(cols.rank)
	rank, err := strconv.Atoi(rankText)
	if err != nil {
		return rankings.UniversityRecord{}, domainerrors.Newf(domainerrors.CodeLoadFailed, "row %d: global rank %q is not an integer", row, rankText)
	}
	if rank <= 0 {
		return rankings.UniversityRecord{}, domainerrors.Newf(domainerrors.CodeLoadFailed, "row %d: global rank %d is not positive", row, rank)
	}

	return rankings.UniversityRecord{
		Name:       name,
		Country:    country,
		City:       get(cols.city), // some records genuinely lack a city
		GlobalRank: rank,
	}, nil
}

// resolveColumns matches header names after normalization, so
// "Global Rank", "global_rank" and "GlobalRank" all resolve.
func resolveColumns(header []string) (columns, error) {
	cols := columns{name: -1, country: -1, city: -1, rank: -1}
	for i, h := range header {
		switch normalizeHeader(h) {
		case "university", "name", "universityname", "institution":
			cols.name = i
		case "country":
			cols.country = i
		case "city":
			cols.city = i
		case "globalrank", "rank", "worldrank":
			cols.rank = i
		}
	}
	missing := []string{}
	if cols.name == -1 {
		missing = append(missing, "University")
	}
	if cols.country == -1 {
		missing = append(missing, "Country")
	}
	if cols.city == -1 {
		missing = append(missing, "City")
	}
	if cols.rank == -1 {
		missing = append(missing, "Global Rank")
	}
	if len(missing) > 0 {
		return columns{}, domainerrors.Newf(domainerrors.CodeLoadFailed, "missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimPrefix(h, "\ufeff") // BOM on the first column of some exports
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
