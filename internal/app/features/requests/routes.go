// internal/app/features/requests/routes.go
package requests

import "github.com/go-chi/chi/v5"

// Routes registers the membership-request endpoints on the token
// middleware group.
func Routes(r chi.Router, h *Handler) {
	r.Post("/addrequest", h.HandleAdd)
	r.Post("/setrequest", h.HandleSet)
}
