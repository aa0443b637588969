package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all session lifecycle routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.HandleCreateSession)
	r.Get("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleGetSession(w, r, chi.URLParam(r, "id"))
	})
	r.Post("/sessions/{id}/client", func(w http.ResponseWriter, r *http.Request) {
		h.HandleRegisterClient(w, r, chi.URLParam(r, "id"))
	})
}
