// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes registers the user-management endpoints on the token
// middleware group. Role checks happen in the handlers since the role
// model is a flat tag set.
func Routes(r chi.Router, h *Handler) {
	r.Post("/adduser", h.HandleAdd)
	r.Post("/setuser", h.HandleSet)
	r.Post("/rmuser", h.HandleRemove)
}
