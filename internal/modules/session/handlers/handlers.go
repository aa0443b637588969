// Package handlers provides HTTP handlers for session lifecycle
// operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/session"
)

// Handler handles session HTTP requests
type Handler struct {
	sessions *session.Manager
	log      zerolog.Logger
}

// NewHandler creates a new session handler
func NewHandler(sessions *session.Manager, log zerolog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		log:      log.With().Str("handler", "session").Logger(),
	}
}

// HandleCreateSession handles POST /api/sessions
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()

	h.writeJSON(w, http.StatusCreated, envelope(map[string]interface{}{
		"session_id": s.ID,
		"created_at": s.CreatedAt.Format(time.RFC3339),
	}))
}

// HandleRegisterClient handles POST /api/sessions/{id}/client
func (h *Handler) HandleRegisterClient(w http.ResponseWriter, r *http.Request, id string) {
	var client domain.ClientRecord
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.sessions.SetClient(id, client); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(map[string]interface{}{
		"session_id": id,
		"client":     client,
	}))
}

// HandleGetSession handles GET /api/sessions/{id}
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request, id string) {
	s, err := h.sessions.Get(id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	data := map[string]interface{}{
		"session_id": s.ID,
		"created_at": s.CreatedAt.Format(time.RFC3339),
		"client":     s.Client,
		"score":      s.Score,
		"allocation": s.Allocation,
		"stats":      s.Stats,
		"projection": s.Projection,
	}
	if s.Category != "" {
		data["category"] = s.Category
	}

	h.writeJSON(w, http.StatusOK, envelope(data))
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
