package payments

import (
	"github.com/go-chi/chi/v5"

	"github.com/kurier-app/kurier/internal/authz"
)

// MountRoutes attaches payment routes. Both operations are owner-only.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Restricted(authz.RoleOwner)))
		r.Post("/", h.Create)
		r.Get("/", h.List)
	})
}
