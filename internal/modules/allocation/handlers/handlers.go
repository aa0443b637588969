// Package handlers provides HTTP handlers for allocation operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/allocation"
	"github.com/aristath/advisor/internal/modules/session"
)

// Handler handles allocation HTTP requests
type Handler struct {
	sessions *session.Manager
	log      zerolog.Logger
}

// NewHandler creates a new allocation handler
func NewHandler(sessions *session.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		log:      log.With().Str("handler", "allocation").Logger(),
	}
}

// HandleGetAllocation handles GET /api/sessions/{id}/allocation.
// The first read after a risk assessment resolves and stores the
// category's default model, so the downstream stages always see a
// concrete allocation.
func (h *Handler) HandleGetAllocation(w http.ResponseWriter, r *http.Request, id string) {
	s, err := h.sessions.Get(id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if s.Score == nil {
		http.Error(w, "Questionnaire has not been scored yet", http.StatusConflict)
		return
	}

	model, err := allocation.DefaultAllocation(s.Category)
	if err != nil {
		h.log.Error().Err(err).Str("session_id", id).Msg("Failed to resolve allocation model")
		http.Error(w, "Failed to resolve allocation model", http.StatusInternalServerError)
		return
	}

	current := s.Allocation
	if current == nil {
		resolved, err := allocation.ApplyOverrides(model, allocation.DefaultWeights(model))
		if err != nil {
			h.log.Error().Err(err).Str("session_id", id).Msg("Failed to resolve default allocation")
			http.Error(w, "Failed to resolve default allocation", http.StatusInternalServerError)
			return
		}
		if err := h.sessions.SetAllocation(id, resolved); err != nil {
			h.log.Error().Err(err).Str("session_id", id).Msg("Failed to store default allocation")
			http.Error(w, "Failed to store default allocation", http.StatusInternalServerError)
			return
		}
		current = &resolved
	}

	h.writeJSON(w, http.StatusOK, envelope(allocationData(model, *current)))
}

// HandleUpdateAllocation handles PUT /api/sessions/{id}/allocation
func (h *Handler) HandleUpdateAllocation(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Weights map[string]int `json:"weights"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.sessions.Get(id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if s.Score == nil {
		http.Error(w, "Questionnaire has not been scored yet", http.StatusConflict)
		return
	}

	model, err := allocation.DefaultAllocation(s.Category)
	if err != nil {
		h.log.Error().Err(err).Str("session_id", id).Msg("Failed to resolve allocation model")
		http.Error(w, "Failed to resolve allocation model", http.StatusInternalServerError)
		return
	}

	resolved, err := allocation.ApplyOverrides(model, body.Weights)
	if err != nil {
		var sumErr domain.AllocationSumError
		if errors.As(err, &sumErr) {
			h.log.Warn().Str("session_id", id).Int("sum", sumErr.Sum).Msg("Rejected allocation override")
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := h.sessions.SetAllocation(id, resolved); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("session_id", id).Msg("Failed to store allocation")
		http.Error(w, "Failed to store allocation", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(allocationData(model, resolved)))
}

func allocationData(model domain.AllocationModel, current domain.Allocation) map[string]interface{} {
	weights := make(map[string]int, len(current.Holdings))
	for _, holding := range current.Holdings {
		weights[holding.Symbol] = holding.Weight
	}

	instruments := make([]map[string]interface{}, 0, len(model.Entries))
	for _, entry := range model.Entries {
		instruments = append(instruments, map[string]interface{}{
			"symbol":         entry.Instrument.Symbol,
			"name":           entry.Instrument.Name,
			"description":    entry.Instrument.Description,
			"default_weight": entry.DefaultWeight,
			"weight":         weights[entry.Instrument.Symbol],
		})
	}

	return map[string]interface{}{
		"category":    model.Category,
		"profile":     model.Profile,
		"rationale":   model.Rationale,
		"instruments": instruments,
	}
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
