// Package handlers provides HTTP handlers for questionnaire
// operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/questionnaire"
	"github.com/aristath/advisor/internal/modules/session"
)

// Handler handles questionnaire HTTP requests
type Handler struct {
	service  *questionnaire.Service
	sessions *session.Manager
	log      zerolog.Logger
}

// NewHandler creates a new questionnaire handler
func NewHandler(service *questionnaire.Service, sessions *session.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		log:      log.With().Str("handler", "questionnaire").Logger(),
	}
}

// HandleGetQuestionnaire handles GET /api/questionnaire
func (h *Handler) HandleGetQuestionnaire(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"sections":        h.service.Sections(),
		"total_questions": h.service.TotalQuestions(),
		"scale_min":       questionnaire.MinAnswer,
		"scale_max":       questionnaire.MaxAnswer,
	}))
}

// HandleSubmitResponses handles POST /api/sessions/{id}/responses
func (h *Handler) HandleSubmitResponses(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Responses questionnaire.ResponseSet `json:"responses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	score, err := h.service.Score(body.Responses)
	if err != nil {
		var incomplete domain.IncompleteResponseError
		if errors.As(err, &incomplete) {
			h.log.Warn().
				Str("session_id", id).
				Int("section", incomplete.Section).
				Int("question", incomplete.Question).
				Msg("Incomplete questionnaire submission")
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	category := questionnaire.Classify(score)

	if err := h.sessions.SetRiskAssessment(id, score, category); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("session_id", id).Msg("Failed to store risk assessment")
		http.Error(w, "Failed to store risk assessment", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"session_id": id,
		"score":      score,
		"category":   category,
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
