// Package requests serves the group-membership request endpoints.
package requests

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/reelhub/reelhub/internal/app/store/groups"
	"github.com/reelhub/reelhub/internal/app/store/members"
	"github.com/reelhub/reelhub/internal/app/store/requests"
	"github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/realmview"
	"github.com/reelhub/reelhub/internal/app/workflow/requestflow"
)

// Handler is the feature-level entry point for membership requests.
// The state machine itself lives in requestflow; the handler only
// decodes input and reports the updated realm.
type Handler struct {
	Client *mongo.Client
	Flow   *requestflow.Flow
	View   *realmview.Builder
	ErrLog *apierr.Logger
	Log    *zap.Logger
}

func NewHandler(client *mongo.Client, db *mongo.Database, errlog *apierr.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Flow: requestflow.New(
			userstore.New(db),
			groupstore.New(db),
			memberstore.New(db),
			requeststore.New(db),
			logger,
		),
		View:   realmview.New(db),
		ErrLog: errlog,
		Log:    logger,
	}
}
