package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all questionnaire routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/questionnaire", h.HandleGetQuestionnaire)
	r.Post("/sessions/{id}/responses", func(w http.ResponseWriter, r *http.Request) {
		h.HandleSubmitResponses(w, r, chi.URLParam(r, "id"))
	})
}
