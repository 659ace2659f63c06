// internal/app/features/realms/routes.go
package realms

import "github.com/go-chi/chi/v5"

// Routes registers the realm lifecycle endpoints on the token
// middleware group. Both are ROOT-only; the handlers enforce the role.
func Routes(r chi.Router, h *Handler) {
	r.Post("/addrealm", h.HandleAdd)
	r.Post("/rmrealm", h.HandleRemove)
}
