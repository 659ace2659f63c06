// Package listview serves the realm snapshot endpoint.
package listview

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/reelhub/reelhub/internal/app/features/shared"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/app/system/realmview"
)

// Handler serves the read-only realm snapshot.
type Handler struct {
	View   *realmview.Builder
	ErrLog *apierr.Logger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errlog *apierr.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		View:   realmview.New(db),
		ErrLog: errlog,
		Log:    logger,
	}
}

// HandleList returns the caller's realm view. Every authenticated user
// may call it; the view is always scoped to the caller's own realm.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)
	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}

// Routes registers the snapshot endpoint on the token middleware group.
func Routes(r chi.Router, h *Handler) {
	r.Post("/list", h.HandleList)
}
