package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"rankboard/internal/rankings"
	"rankboard/internal/rankings/store"
)

type ServiceSuite struct {
	suite.Suite
	svc *Service
	ctx context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.svc = New(store.New([]rankings.UniversityRecord{
		{Name: "A", Country: "US", City: "Boston", GlobalRank: 1},
		{Name: "B", Country: "UK", City: "London", GlobalRank: 5},
		{Name: "C", Country: "US", City: "Boston", GlobalRank: 10},
		{Name: "D", Country: "France", City: "Paris", GlobalRank: 120},
		{Name: "E", Country: "UK", City: "Oxford", GlobalRank: 600},
		{Name: "F", Country: "US", City: "Chicago", GlobalRank: 1500},
		{Name: "G", Country: "Japan", City: "Tokyo", GlobalRank: 5200},
	}))
}

func names(records []rankings.UniversityRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func (s *ServiceSuite) TestFilterRangeContainment() {
	got := s.svc.Filter(s.ctx, rankings.Filter{MinRank: 5, MaxRank: 600})
	s.Require().NotEmpty(got)
	for _, rec := range got {
		s.GreaterOrEqual(rec.GlobalRank, 5)
		s.LessOrEqual(rec.GlobalRank, 600)
	}
}

func (s *ServiceSuite) TestEmptyCountrySelectionMeansAll() {
	all := s.svc.Filter(s.ctx, rankings.Filter{})
	none := s.svc.Filter(s.ctx, rankings.Filter{Countries: nil})
	s.Equal(all, none)
	s.Len(all, 7)
}

func (s *ServiceSuite) TestCountryAndRangeExample() {
	// The canonical example: countries={US}, range [1,10], N=10 over
	// [(A,US,1),(B,UK,5),(C,US,10)] yields [A,C] in rank order.
	got := s.svc.Filter(s.ctx, rankings.Filter{
		Countries: []string{"US"},
		MinRank:   1,
		MaxRank:   10,
		Limit:     10,
	})
	s.Equal([]string{"A", "C"}, names(got))
}

func (s *ServiceSuite) TestTruncation() {
	s.Run("returns at most N rows", func() {
		got := s.svc.Filter(s.ctx, rankings.Filter{Limit: 3})
		s.Len(got, 3)
	})

	s.Run("returns min of N and matches", func() {
		got := s.svc.Filter(s.ctx, rankings.Filter{Countries: []string{"US"}, Limit: 10})
		s.Len(got, 3)
	})

	s.Run("keeps the lowest ranks", func() {
		got := s.svc.Filter(s.ctx, rankings.Filter{Limit: 2})
		s.Equal([]string{"A", "B"}, names(got))
	})

	s.Run("zero limit means unlimited", func() {
		got := s.svc.Filter(s.ctx, rankings.Filter{Limit: 0})
		s.Len(got, 7)
	})
}

func (s *ServiceSuite) TestFilterSortedAscending() {
	got := s.svc.Filter(s.ctx, rankings.Filter{})
	for i := 1; i < len(got); i++ {
		s.LessOrEqual(got[i-1].GlobalRank, got[i].GlobalRank)
	}
}

func (s *ServiceSuite) TestFilterIdempotent() {
	f := rankings.Filter{Countries: []string{"US", "UK"}, MinRank: 1, MaxRank: 1000, Limit: 4}
	first := s.svc.Filter(s.ctx, f)
	second := s.svc.Filter(s.ctx, f)
	s.Equal(first, second)
	s.Equal(s.svc.Summary(s.ctx, f), s.svc.Summary(s.ctx, f))
}

func (s *ServiceSuite) TestSummary() {
	sum := s.svc.Summary(s.ctx, rankings.Filter{Countries: []string{"US"}})
	s.Equal(3, sum.Total)
	s.Equal(1, sum.Countries)
	s.Equal(2, sum.Cities) // Boston counted once
	s.InDelta((1+10+1500)/3.0, sum.MeanRank, 1e-9)
}

func (s *ServiceSuite) TestSummaryIgnoresLimit() {
	limited := s.svc.Summary(s.ctx, rankings.Filter{Limit: 2})
	s.Equal(7, limited.Total)
}

func (s *ServiceSuite) TestSummaryEmptySet() {
	sum := s.svc.Summary(s.ctx, rankings.Filter{Countries: []string{"Atlantis"}})
	s.Zero(sum.Total)
	s.Zero(sum.Countries)
	s.Zero(sum.Cities)
	s.Zero(sum.MeanRank)
}

func (s *ServiceSuite) TestTopCountries() {
	got := s.svc.TopCountries(s.ctx, rankings.Filter{}, 2)
	s.Require().Len(got, 2)
	// US has 3, UK has 2.
	s.Equal(rankings.GroupCount{Label: "US", Count: 3}, got[0])
	s.Equal(rankings.GroupCount{Label: "UK", Count: 2}, got[1])
}

func (s *ServiceSuite) TestTopCountriesTiesAlphabetical() {
	got := s.svc.TopCountries(s.ctx, rankings.Filter{}, 0)
	s.Require().Len(got, 4)
	// France and Japan both count 1; France sorts first.
	s.Equal("France", got[2].Label)
	s.Equal("Japan", got[3].Label)
}

func (s *ServiceSuite) TestTopCities() {
	got := s.svc.TopCities(s.ctx, rankings.Filter{}, 1)
	s.Require().Len(got, 1)
	s.Equal(rankings.GroupCount{Label: "Boston", Count: 2}, got[0])
}

func (s *ServiceSuite) TestHistogram() {
	s.Run("counts cover all matches", func() {
		bins := s.svc.Histogram(s.ctx, rankings.Filter{}, 10)
		total := 0
		for _, b := range bins {
			total += b.Count
		}
		s.Equal(7, total)
	})

	s.Run("bins span the observed range", func() {
		bins := s.svc.Histogram(s.ctx, rankings.Filter{}, 10)
		s.Require().NotEmpty(bins)
		s.Equal(1, bins[0].Lo)
		s.Equal(5200, bins[len(bins)-1].Hi)
	})

	s.Run("more bins than distinct ranks collapses", func() {
		bins := s.svc.Histogram(s.ctx, rankings.Filter{MaxRank: 10}, 50)
		s.LessOrEqual(len(bins), 10)
	})

	s.Run("empty set yields nil", func() {
		s.Nil(s.svc.Histogram(s.ctx, rankings.Filter{Countries: []string{"Atlantis"}}, 10))
	})
}

func (s *ServiceSuite) TestClusters() {
	clusters := s.svc.Clusters(s.ctx, rankings.Filter{})
	s.Require().Len(clusters, 5)

	byName := make(map[string]int)
	for _, c := range clusters {
		byName[c.Name] = c.Count
	}
	s.Equal(3, byName["Elite (1-100)"])          // ranks 1, 5, 10
	s.Equal(1, byName["Premier (101-500)"])      // 120
	s.Equal(1, byName["Distinguished (501-1000)"]) // 600
	s.Equal(1, byName["Notable (1001-5000)"])    // 1500
	s.Equal(1, byName["Emerging (5000+)"])       // 5200
}

func (s *ServiceSuite) TestClustersRespectFilter() {
	clusters := s.svc.Clusters(s.ctx, rankings.Filter{MaxRank: 100})
	for _, c := range clusters {
		if c.Name == "Elite (1-100)" {
			s.Equal(3, c.Count)
		} else {
			s.Zero(c.Count)
		}
	}
}
