// Package users serves the admin user-management endpoints.
package users

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/reelhub/reelhub/internal/app/store/groups"
	"github.com/reelhub/reelhub/internal/app/store/members"
	"github.com/reelhub/reelhub/internal/app/store/ratings"
	"github.com/reelhub/reelhub/internal/app/store/requests"
	"github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/app/system/realmview"
)

// Handler is the feature-level entry point for user management.
type Handler struct {
	Client   *mongo.Client
	Users    *userstore.Store
	Groups   *groupstore.Store
	Members  *memberstore.Store
	Ratings  *ratingstore.Store
	Requests *requeststore.Store
	Auth     *auth.Authenticator
	View     *realmview.Builder
	ErrLog   *apierr.Logger
	Log      *zap.Logger
}

func NewHandler(client *mongo.Client, db *mongo.Database, a *auth.Authenticator, errlog *apierr.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Client:   client,
		Users:    userstore.New(db),
		Groups:   groupstore.New(db),
		Members:  memberstore.New(db),
		Ratings:  ratingstore.New(db),
		Requests: requeststore.New(db),
		Auth:     a,
		View:     realmview.New(db),
		ErrLog:   errlog,
		Log:      logger,
	}
}
