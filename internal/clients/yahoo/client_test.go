package yahoo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/aristath/advisor/internal/clientdata"
	"github.com/aristath/advisor/internal/domain"
)

// chartJSON builds a minimal v8 chart payload for the given unix
// timestamps and closes (use "null" for missing closes).
func chartJSON(timestamps []int64, closes []string) string {
	ts := ""
	cl := ""
	for i := range timestamps {
		if i > 0 {
			ts += ","
			cl += ","
		}
		ts += fmt.Sprintf("%d", timestamps[i])
		cl += closes[i]
	}
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"timestamp": [%s],
				"indicators": {"quote": [{"close": [%s]}]}
			}],
			"error": null
		}
	}`, ts, cl)
}

func newCacheRepo(t *testing.T) *clientdata.Repository {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := clientdata.NewRepository(db)
	require.NoError(t, repo.InitSchema())
	return repo
}

func TestDailyCloses(t *testing.T) {
	// 2024-01-02 and 2024-01-03 UTC, market close timestamps
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v8/finance/chart/SPY")
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		fmt.Fprint(w, chartJSON([]int64{1704207600, 1704294000}, []string{"470.31", "468.79"}))
	}))
	defer srv.Close()

	client := NewClient(nil, 0, zerolog.Nop())
	client.SetBaseURL(srv.URL)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	series, err := client.DailyCloses(context.Background(), "SPY", start, end)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "2024-01-02", series[0].Date)
	assert.Equal(t, 470.31, series[0].Close)
	assert.Equal(t, "2024-01-03", series[1].Date)
}

func TestDailyCloses_SkipsNullCloses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartJSON([]int64{1704207600, 1704294000, 1704380400}, []string{"470.31", "null", "467.28"}))
	}))
	defer srv.Close()

	client := NewClient(nil, 0, zerolog.Nop())
	client.SetBaseURL(srv.URL)

	series, err := client.DailyCloses(context.Background(), "SPY", time.Unix(1704067200, 0), time.Unix(1704412800, 0))
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "2024-01-02", series[0].Date)
	assert.Equal(t, "2024-01-04", series[1].Date)
}

func TestDailyCloses_NotFoundStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(nil, 0, zerolog.Nop())
	client.SetBaseURL(srv.URL)

	_, err := client.DailyCloses(context.Background(), "NOPE", time.Unix(0, 0), time.Unix(86400, 0))
	require.Error(t, err)

	var dre domain.DataRetrievalError
	require.True(t, errors.As(err, &dre))
	assert.Equal(t, domain.RetrievalNotFound, dre.Kind)
	assert.Equal(t, "NOPE", dre.Symbol)
}

func TestDailyCloses_ChartError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`)
	}))
	defer srv.Close()

	client := NewClient(nil, 0, zerolog.Nop())
	client.SetBaseURL(srv.URL)

	_, err := client.DailyCloses(context.Background(), "BOGUS", time.Unix(0, 0), time.Unix(86400, 0))

	var dre domain.DataRetrievalError
	require.True(t, errors.As(err, &dre))
	assert.Equal(t, domain.RetrievalNotFound, dre.Kind)
}

func TestDailyCloses_EmptyResultIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [{"timestamp": [], "indicators": {"quote": [{"close": []}]}}], "error": null}}`)
	}))
	defer srv.Close()

	client := NewClient(nil, 0, zerolog.Nop())
	client.SetBaseURL(srv.URL)

	_, err := client.DailyCloses(context.Background(), "SPY", time.Unix(0, 0), time.Unix(86400, 0))

	var dre domain.DataRetrievalError
	require.True(t, errors.As(err, &dre))
	assert.Equal(t, domain.RetrievalNotFound, dre.Kind, "empty result must be NotFound, not a silent empty series")
}

func TestDailyCloses_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	client := NewClient(nil, 0, zerolog.Nop())
	client.SetBaseURL(srv.URL)

	_, err := client.DailyCloses(context.Background(), "SPY", time.Unix(0, 0), time.Unix(86400, 0))

	var dre domain.DataRetrievalError
	require.True(t, errors.As(err, &dre))
	assert.Equal(t, domain.RetrievalNetworkFailure, dre.Kind)
}

func TestDailyCloses_ServerErrorIsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(nil, 0, zerolog.Nop())
	client.SetBaseURL(srv.URL)

	_, err := client.DailyCloses(context.Background(), "SPY", time.Unix(0, 0), time.Unix(86400, 0))

	var dre domain.DataRetrievalError
	require.True(t, errors.As(err, &dre))
	assert.Equal(t, domain.RetrievalNetworkFailure, dre.Kind)
}

func TestDailyCloses_CacheHitSurvivesProviderOutage(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, chartJSON([]int64{1704207600}, []string{"470.31"}))
	}))

	repo := newCacheRepo(t)
	client := NewClient(repo, time.Hour, zerolog.Nop())
	client.SetBaseURL(srv.URL)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	first, err := client.DailyCloses(context.Background(), "SPY", start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// Provider goes away; identical request is served from cache.
	srv.Close()

	second, err := client.DailyCloses(context.Background(), "SPY", start, end)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestDailyCloses_FailuresAreNotCached(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, chartJSON([]int64{1704207600}, []string{"470.31"}))
	}))
	defer srv.Close()

	repo := newCacheRepo(t)
	client := NewClient(repo, time.Hour, zerolog.Nop())
	client.SetBaseURL(srv.URL)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	_, err := client.DailyCloses(context.Background(), "SPY", start, end)
	require.Error(t, err)

	// Retry within the same session must hit the provider again, not a
	// cached failure.
	series, err := client.DailyCloses(context.Background(), "SPY", start, end)
	require.NoError(t, err)
	assert.Len(t, series, 1)
	assert.Equal(t, 2, calls)
}
