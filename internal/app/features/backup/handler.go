// Package backup serves the archive dump and restore endpoints.
//
// A backup is a single JSON file holding every collection as extended
// JSON. Restore wipes the database and reloads it from such a file; it
// authenticates with the master key in place of a user token, so it
// works even when the user collection is unusable.
package backup

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
)

// Handler is the feature-level entry point for backup and restore.
type Handler struct {
	DB     *mongo.Database
	Auth   *auth.Authenticator
	ErrLog *apierr.Logger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, a *auth.Authenticator, errlog *apierr.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Auth:   a,
		ErrLog: errlog,
		Log:    logger,
	}
}
