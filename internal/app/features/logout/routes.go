// internal/app/features/logout/routes.go
package logout

import "github.com/go-chi/chi/v5"

// Routes registers the logout endpoint on the token middleware group.
func Routes(r chi.Router, h *Handler) {
	r.Post("/logout", h.HandleLogout)
}
