package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all statistics routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions/{id}/statistics", func(w http.ResponseWriter, r *http.Request) {
		h.HandleComputeStatistics(w, r, chi.URLParam(r, "id"))
	})
}
