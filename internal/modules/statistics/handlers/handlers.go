// Package handlers provides HTTP handlers for portfolio statistics
// operations.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/session"
	"github.com/aristath/advisor/internal/modules/statistics"
)

// PriceProvider fetches daily closes for one instrument.
type PriceProvider interface {
	DailyCloses(ctx context.Context, symbol string, start, end time.Time) (domain.PriceSeries, error)
}

// Handler handles portfolio statistics HTTP requests
type Handler struct {
	service  *statistics.Service
	prices   PriceProvider
	sessions *session.Manager
	log      zerolog.Logger
}

// NewHandler creates a new statistics handler
func NewHandler(service *statistics.Service, prices PriceProvider, sessions *session.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		service:  service,
		prices:   prices,
		sessions: sessions,
		log:      log.With().Str("handler", "statistics").Logger(),
	}
}

// HandleComputeStatistics handles POST /api/sessions/{id}/statistics.
// Price histories for all instruments are fetched concurrently; the
// session is only written after every fetch and the computation
// succeed.
func (h *Handler) HandleComputeStatistics(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	start, err := time.Parse("2006-01-02", body.Start)
	if err != nil {
		http.Error(w, "Invalid start date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := time.Parse("2006-01-02", body.End)
	if err != nil {
		http.Error(w, "Invalid end date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if !start.Before(end) {
		http.Error(w, "Start date must be before end date", http.StatusUnprocessableEntity)
		return
	}

	s, err := h.sessions.Get(id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if s.Allocation == nil {
		http.Error(w, "Allocation has not been resolved yet", http.StatusConflict)
		return
	}
	alloc := *s.Allocation

	series := make(map[string]domain.PriceSeries, len(alloc.Holdings))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(r.Context())
	for _, symbol := range alloc.Symbols() {
		symbol := symbol
		g.Go(func() error {
			prices, err := h.prices.DailyCloses(ctx, symbol, start, end)
			if err != nil {
				return err
			}
			mu.Lock()
			series[symbol] = prices
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var retrieval domain.DataRetrievalError
		if errors.As(err, &retrieval) {
			h.log.Error().
				Err(err).
				Str("session_id", id).
				Str("symbol", retrieval.Symbol).
				Str("kind", string(retrieval.Kind)).
				Msg("Price retrieval failed")
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		h.log.Error().Err(err).Str("session_id", id).Msg("Price retrieval failed")
		http.Error(w, "Failed to retrieve price data", http.StatusBadGateway)
		return
	}

	stats, err := h.service.ComputeStats(series, alloc)
	if err != nil {
		var insufficient domain.InsufficientDataError
		if errors.As(err, &insufficient) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.log.Error().Err(err).Str("session_id", id).Msg("Failed to compute statistics")
		http.Error(w, "Failed to compute statistics", http.StatusInternalServerError)
		return
	}

	if err := h.sessions.SetStats(id, stats); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"session_id":          id,
		"start":               body.Start,
		"end":                 body.End,
		"expected_return_pct": stats.ExpectedReturnPct,
		"volatility_pct":      stats.VolatilityPct,
	}))
}

func envelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
