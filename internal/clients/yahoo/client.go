// Package yahoo provides daily closing price retrieval from the Yahoo
// Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/clientdata"
	"github.com/aristath/advisor/internal/domain"
)

// DefaultBaseURL is the public Yahoo Finance query endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches daily close series for a symbol over a date range.
type Client struct {
	baseURL   string
	client    *http.Client
	log       zerolog.Logger
	cacheRepo *clientdata.Repository
	cacheTTL  time.Duration
}

// NewClient creates a new Yahoo Finance chart client.
// cacheRepo is optional - if nil, caching is disabled.
func NewClient(cacheRepo *clientdata.Repository, cacheTTL time.Duration, log zerolog.Logger) *Client {
	if cacheTTL <= 0 {
		cacheTTL = clientdata.TTLDailyPrices
	}
	return &Client{
		baseURL:   DefaultBaseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
		log:       log.With().Str("client", "yahoo").Logger(),
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
	}
}

// SetBaseURL overrides the API base URL (used in tests and for
// self-hosted proxies).
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// chartResponse mirrors the subset of the v8 chart payload we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyCloses returns the daily closing prices for symbol between
// start and end (inclusive), oldest first with strictly increasing
// dates.
//
// Failures are classified per the domain taxonomy: an unknown symbol
// or an empty result is RetrievalNotFound; transport and server
// errors are RetrievalNetworkFailure. Only successful responses are
// cached - a failed request is retried on the next call.
func (c *Client) DailyCloses(ctx context.Context, symbol string, start, end time.Time) (domain.PriceSeries, error) {
	startDay := start.UTC().Format("2006-01-02")
	endDay := end.UTC().Format("2006-01-02")
	cacheKey := clientdata.RequestKey(symbol, startDay, endDay)

	if c.cacheRepo != nil {
		series, err := c.cacheRepo.GetIfFresh(cacheKey)
		if err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Price cache lookup failed")
		} else if series != nil {
			c.log.Debug().
				Str("symbol", symbol).
				Int("bars", len(series)).
				Msg("Cache hit")
			return series, nil
		}
	}

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), url.Values{
		"period1":  {fmt.Sprintf("%d", start.UTC().Unix())},
		"period2":  {fmt.Sprintf("%d", end.UTC().Unix())},
		"interval": {"1d"},
		"events":   {"history"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "advisor/1.0")

	c.log.Debug().Str("symbol", symbol).Str("start", startDay).Str("end", endDay).Msg("Fetching daily closes")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.DataRetrievalError{Kind: domain.RetrievalNetworkFailure, Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.DataRetrievalError{
			Kind:   domain.RetrievalNotFound,
			Symbol: symbol,
			Err:    fmt.Errorf("symbol not found"),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domain.DataRetrievalError{
			Kind:   domain.RetrievalNetworkFailure,
			Symbol: symbol,
			Err:    fmt.Errorf("API returned status %d", resp.StatusCode),
		}
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.DataRetrievalError{
			Kind:   domain.RetrievalNetworkFailure,
			Symbol: symbol,
			Err:    fmt.Errorf("failed to parse response: %w", err),
		}
	}

	if payload.Chart.Error != nil {
		return nil, domain.DataRetrievalError{
			Kind:   domain.RetrievalNotFound,
			Symbol: symbol,
			Err:    fmt.Errorf("%s: %s", payload.Chart.Error.Code, payload.Chart.Error.Description),
		}
	}

	series := extractSeries(payload)
	if len(series) == 0 {
		// Distinguish "provider answered with nothing" from a hard
		// failure: the caller can adjust the range or symbol.
		return nil, domain.DataRetrievalError{
			Kind:   domain.RetrievalNotFound,
			Symbol: symbol,
			Err:    fmt.Errorf("no price data in range %s..%s", startDay, endDay),
		}
	}

	if c.cacheRepo != nil {
		if err := c.cacheRepo.Store(cacheKey, series, c.cacheTTL); err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache price series")
		}
	}

	c.log.Info().
		Str("symbol", symbol).
		Int("bars", len(series)).
		Msg("Fetched daily closes")

	return series, nil
}

// extractSeries converts the chart payload to an ordered PriceSeries,
// skipping null closes (holidays, halts) and duplicate dates.
func extractSeries(payload chartResponse) domain.PriceSeries {
	if len(payload.Chart.Result) == 0 {
		return nil
	}
	result := payload.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	closes := result.Indicators.Quote[0].Close

	var series domain.PriceSeries
	lastDate := ""
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		date := time.Unix(ts, 0).UTC().Format("2006-01-02")
		if date <= lastDate {
			continue
		}
		series = append(series, domain.PriceBar{Date: date, Close: *closes[i]})
		lastDate = date
	}
	return series
}
