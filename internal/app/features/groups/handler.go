// Package groups serves the group lifecycle endpoints. Any authenticated
// user can create a group they own; editing and removal take the owner
// or an admin.
package groups

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/reelhub/reelhub/internal/app/store/groups"
	"github.com/reelhub/reelhub/internal/app/store/members"
	"github.com/reelhub/reelhub/internal/app/store/requests"
	"github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/realmview"
)

// Handler is the feature-level entry point for groups.
type Handler struct {
	Client   *mongo.Client
	Users    *userstore.Store
	Groups   *groupstore.Store
	Members  *memberstore.Store
	Requests *requeststore.Store
	View     *realmview.Builder
	ErrLog   *apierr.Logger
	Log      *zap.Logger
}

func NewHandler(client *mongo.Client, db *mongo.Database, errlog *apierr.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Client:   client,
		Users:    userstore.New(db),
		Groups:   groupstore.New(db),
		Members:  memberstore.New(db),
		Requests: requeststore.New(db),
		View:     realmview.New(db),
		ErrLog:   errlog,
		Log:      logger,
	}
}
