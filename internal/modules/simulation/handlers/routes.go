package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all projection routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions/{id}/projection", func(w http.ResponseWriter, r *http.Request) {
		h.HandleProjectGrowth(w, r, chi.URLParam(r, "id"))
	})
}
