package trip

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers trip planning routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/plan-trip", h.PlanTrip)
	r.Post("/reindex", h.Reindex)
}
