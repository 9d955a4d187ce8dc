package restaurants

import (
	"github.com/go-chi/chi/v5"

	"github.com/kurier-app/kurier/internal/authz"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Public()))
		r.Get("/", h.List)
		r.Get("/{id}", h.Show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(authz.Restricted(authz.RoleOwner)))
		r.Post("/", h.Create)
	})
}
