// internal/app/features/groups/routes.go
package groups

import "github.com/go-chi/chi/v5"

// Routes registers the group-management endpoints on the token
// middleware group.
func Routes(r chi.Router, h *Handler) {
	r.Post("/addgroup", h.HandleAdd)
	r.Post("/setgroup", h.HandleSet)
	r.Post("/rmgroup", h.HandleRemove)
}
