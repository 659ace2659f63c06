// Package movies serves the admin movie-catalogue endpoints.
package movies

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/reelhub/reelhub/internal/app/store/movies"
	"github.com/reelhub/reelhub/internal/app/store/ratings"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/realmview"
)

// Handler is the feature-level entry point for the movie catalogue.
type Handler struct {
	Client  *mongo.Client
	Movies  *moviestore.Store
	Ratings *ratingstore.Store
	View    *realmview.Builder
	ErrLog  *apierr.Logger
	Log     *zap.Logger
}

func NewHandler(client *mongo.Client, db *mongo.Database, errlog *apierr.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Movies:  moviestore.New(db),
		Ratings: ratingstore.New(db),
		View:    realmview.New(db),
		ErrLog:  errlog,
		Log:     logger,
	}
}
