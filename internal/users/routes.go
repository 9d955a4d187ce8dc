package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/kurier-app/kurier/internal/authz"
)

// MountRoutes attaches account routes. Register and login carry no role
// declaration: they are the public entry points that produce credentials.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Public()))
		r.Post("/", h.Register)
		r.Post("/login", h.Login)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Restricted(authz.RoleAny)))
		r.Get("/me", h.Me)
	})
}
