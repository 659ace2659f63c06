// internal/app/features/ratings/routes.go
package ratings

import "github.com/go-chi/chi/v5"

// Routes registers the rating endpoints on the token middleware group.
func Routes(r chi.Router, h *Handler) {
	r.Post("/addrating", h.HandleAdd)
	r.Post("/setrating", h.HandleSet)
	r.Post("/rmrating", h.HandleRemove)
}
