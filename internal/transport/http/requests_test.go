package httptransport

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rankboard/internal/rankings"
	"rankboard/pkg/domainerrors"
)

func TestParseQuery(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want Query
	}{
		{
			name: "defaults",
			url:  "/api/universities",
			want: Query{TopN: defaultTopN},
		},
		{
			name: "repeated countries",
			url:  "/api/universities?countries=US&countries=UK",
			want: Query{Filter: rankings.Filter{Countries: []string{"US", "UK"}}, TopN: defaultTopN},
		},
		{
			name: "comma separated countries",
			url:  "/api/universities?countries=US,UK,France",
			want: Query{Filter: rankings.Filter{Countries: []string{"US", "UK", "France"}}, TopN: defaultTopN},
		},
		{
			name: "empty country entries dropped",
			url:  "/api/universities?countries=,US,%20,",
			want: Query{Filter: rankings.Filter{Countries: []string{"US"}}, TopN: defaultTopN},
		},
		{
			name: "rank range and limit",
			url:  "/api/universities?min_rank=1&max_rank=1000&limit=25",
			want: Query{Filter: rankings.Filter{MinRank: 1, MaxRank: 1000, Limit: 25}, TopN: defaultTopN},
		},
		{
			name: "top entries",
			url:  "/charts/countries.png?top=15",
			want: Query{TopN: 15},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseQuery(httptest.NewRequest("GET", tc.url, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseQueryErrors(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"non-numeric min_rank", "/?min_rank=abc"},
		{"non-numeric max_rank", "/?max_rank=1.5"},
		{"negative limit", "/?limit=-1"},
		{"negative top", "/?top=-2"},
		{"inverted range", "/?min_rank=100&max_rank=10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseQuery(httptest.NewRequest("GET", tc.url, nil))
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.CodeBadRequest))
		})
	}
}
