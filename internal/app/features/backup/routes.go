// internal/app/features/backup/routes.go
package backup

import "github.com/go-chi/chi/v5"

// Routes registers the backup endpoint on the token middleware group.
// Restore is NOT registered here; it authenticates with the master key
// and is registered by the bootstrap router before the token middleware.
func Routes(r chi.Router, h *Handler) {
	r.Post("/backup", h.HandleBackup)
}
