package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all allocation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions/{id}/allocation", func(w http.ResponseWriter, r *http.Request) {
		h.HandleGetAllocation(w, r, chi.URLParam(r, "id"))
	})
	r.Put("/sessions/{id}/allocation", func(w http.ResponseWriter, r *http.Request) {
		h.HandleUpdateAllocation(w, r, chi.URLParam(r, "id"))
	})
}
