// internal/app/features/movies/routes.go
package movies

import "github.com/go-chi/chi/v5"

// Routes registers the movie catalogue endpoints on the token
// middleware group.
func Routes(r chi.Router, h *Handler) {
	r.Post("/addmovie", h.HandleAdd)
	r.Post("/setmovie", h.HandleSet)
	r.Post("/rmmovie", h.HandleRemove)
}
