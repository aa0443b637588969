// Package handlers provides HTTP handlers for growth projection
// operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/modules/session"
	"github.com/aristath/advisor/internal/modules/simulation"
)

const maxHorizonYears = 30

// Handler handles growth projection HTTP requests
type Handler struct {
	service  *simulation.Service
	sessions *session.Manager
	log      zerolog.Logger
}

// NewHandler creates a new simulation handler
func NewHandler(service *simulation.Service, sessions *session.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		log:      log.With().Str("handler", "simulation").Logger(),
	}
}

// HandleProjectGrowth handles POST /api/sessions/{id}/projection.
// The growth rate is the portfolio's annualized expected return from
// the statistics stage, so statistics must be computed first.
func (h *Handler) HandleProjectGrowth(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Initial             float64 `json:"initial"`
		MonthlyContribution float64 `json:"monthly_contribution"`
		HorizonYears        int     `json:"horizon_years"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.HorizonYears < 1 || body.HorizonYears > maxHorizonYears {
		http.Error(w, "Horizon must be between 1 and 30 years", http.StatusUnprocessableEntity)
		return
	}

	s, err := h.sessions.Get(id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if s.Stats == nil {
		http.Error(w, "Portfolio statistics have not been computed yet", http.StatusConflict)
		return
	}

	trajectory, err := h.service.Simulate(s.Stats.ExpectedReturnPct, body.Initial, body.MonthlyContribution, body.HorizonYears)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := h.sessions.SetProjection(id, trajectory); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"session_id":      id,
		"annual_rate_pct": s.Stats.ExpectedReturnPct,
		"horizon_years":   body.HorizonYears,
		"invested":        trajectory.Invested,
		"saved":           trajectory.Saved,
		"final_invested":  trajectory.FinalInvested(),
		"final_saved":     trajectory.FinalSaved(),
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
