package admin

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns admin router. Each route passes through the gate with the
// permission it needs; content moderation routes are mounted separately.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Method("GET", "/me", h.gate.Guard("")(h.Me))
	r.Method("GET", "/users", h.gate.Guard(PermUserManagement)(h.ListUsers))
	r.Method("GET", "/stats", h.gate.Guard(PermSystemSettings)(h.Stats))
	r.Method("GET", "/activity", h.gate.Guard(PermSystemSettings)(h.Activity))

	return r
}
