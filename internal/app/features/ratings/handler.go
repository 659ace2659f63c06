// Package ratings serves the movie-rating endpoints.
package ratings

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/reelhub/reelhub/internal/app/store/movies"
	"github.com/reelhub/reelhub/internal/app/store/ratings"
	"github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/realmview"
)

// Handler is the feature-level entry point for ratings.
type Handler struct {
	Client  *mongo.Client
	Users   *userstore.Store
	Movies  *moviestore.Store
	Ratings *ratingstore.Store
	View    *realmview.Builder
	ErrLog  *apierr.Logger
	Log     *zap.Logger
}

func NewHandler(client *mongo.Client, db *mongo.Database, errlog *apierr.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Users:   userstore.New(db),
		Movies:  moviestore.New(db),
		Ratings: ratingstore.New(db),
		View:    realmview.New(db),
		ErrLog:  errlog,
		Log:     logger,
	}
}
