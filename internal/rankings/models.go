// Package rankings holds the domain model for the university rankings
// dataset: the record type, filter parameters, and the aggregate shapes the
// dashboard renders.
package rankings

// UniversityRecord is one row of the rankings table. Records are unique by
// (Name, Country) in practice but that is not enforced; duplicates count
// individually in every aggregate. GlobalRank is always positive after load.
type UniversityRecord struct {
	Name       string `json:"name"`
	Country    string `json:"country"`
	City       string `json:"city"`
	GlobalRank int    `json:"global_rank"`
}

// Filter describes one dashboard query. An empty Countries slice selects all
// countries. MinRank/MaxRank bound the rank inclusively; zero means unbounded
// on that side. Limit truncates the rank-sorted result when positive.
type Filter struct {
	Countries []string
	MinRank   int
	MaxRank   int
	Limit     int
}

// Summary is the metrics panel over a filtered set. MeanRank is 0 when Total
// is 0; rendering that as "N/A" is the caller's concern.
type Summary struct {
	Total     int     `json:"total"`
	Countries int     `json:"countries"`
	Cities    int     `json:"cities"`
	MeanRank  float64 `json:"mean_rank"`
}

// GroupCount is one bar of a per-country or per-city count chart.
type GroupCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HistogramBin is one equal-width rank bucket. Lo is inclusive, Hi exclusive
// except for the last bin which includes its upper edge.
type HistogramBin struct {
	Lo    int `json:"lo"`
	Hi    int `json:"hi"`
	Count int `json:"count"`
}

// Cluster is an excellence cluster: a fixed top-rank bracket.
type Cluster struct {
	Name  string `json:"name"`
	Lo    int    `json:"lo"`
	Hi    int    `json:"hi"` // 0 means open-ended
	Count int    `json:"count"`
}

// clusterCuts matches the brackets the dashboard has always shown.
var clusterCuts = []Cluster{
	{Name: "Elite (1-100)", Lo: 1, Hi: 100},
	{Name: "Premier (101-500)", Lo: 101, Hi: 500},
	{Name: "Distinguished (501-1000)", Lo: 501, Hi: 1000},
	{Name: "Notable (1001-5000)", Lo: 1001, Hi: 5000},
	{Name: "Emerging (5000+)", Lo: 5001, Hi: 0},
}

// ClusterDefinitions returns a fresh copy of the excellence cluster brackets
// with zeroed counts.
func ClusterDefinitions() []Cluster {
	out := make([]Cluster, len(clusterCuts))
	copy(out, clusterCuts)
	return out
}

// Matches reports whether a record passes the filter's country and rank
// predicates. Limit is not a per-record property and is ignored here.
func (f Filter) Matches(rec UniversityRecord) bool {
	if len(f.Countries) > 0 {
		found := false
		for _, c := range f.Countries {
			if c == rec.Country {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinRank > 0 && rec.GlobalRank < f.MinRank {
		return false
	}
	if f.MaxRank > 0 && rec.GlobalRank > f.MaxRank {
		return false
	}
	return true
}
