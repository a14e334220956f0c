package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rankboard/internal/charts"
	"rankboard/internal/rankings"
	"rankboard/internal/rankings/store"
	"rankboard/internal/transport/http/mocks"
	"rankboard/pkg/testutil"
)

func newMockedRouter(t *testing.T) (http.Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := New(mockService, store.New(nil), charts.NewRenderer(), nil, logger, testMetrics)
	r := chi.NewRouter()
	handler.Register(r)
	return r, mockService
}

// The transport must hand the parsed filter to the service untouched.
func TestUniversitiesPassesParsedFilter(t *testing.T) {
	router, mockService := newMockedRouter(t)

	want := rankings.Filter{
		Countries: []string{"US", "UK"},
		MinRank:   1,
		MaxRank:   500,
		Limit:     20,
	}
	mockService.EXPECT().
		Filter(gomock.Any(), want).
		Return([]rankings.UniversityRecord{{Name: "A", Country: "US", GlobalRank: 1}})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet,
		"/api/universities?countries=US,UK&min_rank=1&max_rank=500&limit=20"))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := testutil.UnmarshalResponse[universitiesResponse](t, rr)
	assert.Equal(t, 1, resp.Count)
}

// The top-N chart parameter goes to the aggregation, not the row filter.
func TestCountriesChartPassesTopN(t *testing.T) {
	router, mockService := newMockedRouter(t)

	mockService.EXPECT().
		TopCountries(gomock.Any(), rankings.Filter{}, 7).
		Return([]rankings.GroupCount{{Label: "US", Count: 3}})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/charts/countries.png?top=7"))

	require.Equal(t, http.StatusOK, rr.Code)
	testutil.RequirePNG(t, rr)
}

// A service-level empty slice still yields a valid JSON array.
func TestSummaryDelegates(t *testing.T) {
	router, mockService := newMockedRouter(t)

	mockService.EXPECT().
		Summary(gomock.Any(), rankings.Filter{}).
		Return(rankings.Summary{})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/summary"))

	require.Equal(t, http.StatusOK, rr.Code)
	sum := testutil.UnmarshalResponse[rankings.Summary](t, rr)
	assert.Zero(t, sum.Total)
}
