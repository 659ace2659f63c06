// internal/app/features/ratings/ratings.go
package ratings

import (
	"context"
	"errors"
	"net/http"

	"github.com/reelhub/reelhub/internal/app/features/shared"
	"github.com/reelhub/reelhub/internal/app/policy/ratingpolicy"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/app/system/httpjson"
	"github.com/reelhub/reelhub/internal/app/system/realmscope"
	"github.com/reelhub/reelhub/internal/app/system/timeouts"
	"github.com/reelhub/reelhub/internal/app/system/txn"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type addRatingRequest struct {
	Movie  string `json:"movie"`
	User   string `json:"user"`
	Rating *int   `json:"rating"`
	Labels string `json:"labels"`
}

// HandleAdd records (or overwrites) the author's rating of a movie.
// The author defaults to the caller; admins may rate on behalf of any
// user in the realm. A missing rating value stores a label-only entry.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)

	var req addRatingRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	movieID, err := httpjson.ParseID("movie id", req.Movie)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	authorID := acting.ID
	if req.User != "" {
		if authorID, err = httpjson.ParseID("user id", req.User); err != nil {
			h.ErrLog.Write(w, r, err)
			return
		}
	}
	value := models.NoRating
	if req.Rating != nil {
		value = *req.Rating
	}
	if !models.ValidRating(value) {
		h.ErrLog.Write(w, r, apierr.New(apierr.Validation, "rating %d out of range", value))
		return
	}

	if err := ratingpolicy.CanAuthor(acting, authorID); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		m, err := h.Movies.GetByID(ctx, movieID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apierr.New(apierr.NotFound, "movie %s not found", req.Movie)
			}
			return err
		}
		if err := realmscope.Ensure(acting, m); err != nil {
			return err
		}

		author, err := h.Users.GetByID(ctx, authorID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apierr.New(apierr.NotFound, "user %s not found", authorID.Hex())
			}
			return err
		}
		if err := realmscope.Ensure(acting, author); err != nil {
			return err
		}
		if author.RealmID != m.RealmID {
			return apierr.New(apierr.Scope, "user and movie belong to different realms")
		}

		rt, err := h.Ratings.Upsert(ctx, models.Rating{
			RealmID: m.RealmID,
			UserID:  authorID,
			MovieID: movieID,
			Rating:  value,
			Labels:  req.Labels,
		})
		if err != nil {
			return err
		}
		h.Log.Info("rating recorded",
			zap.String("rating_id", rt.ID.Hex()),
			zap.String("user_id", authorID.Hex()),
			zap.String("movie_id", movieID.Hex()),
			zap.Int("rating", value))
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}

type setRatingRequest struct {
	ID     string  `json:"id"`
	Rating *int    `json:"rating"`
	Labels *string `json:"labels"`
}

// HandleSet applies a partial update to an existing rating. Only the
// author or an admin may change it.
func (h *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)

	var req setRatingRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	ratingID, err := httpjson.ParseID("rating id", req.ID)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if req.Rating != nil && !models.ValidRating(*req.Rating) {
		h.ErrLog.Write(w, r, apierr.New(apierr.Validation, "rating %d out of range", *req.Rating))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		rt, err := h.Ratings.GetByID(ctx, ratingID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apierr.New(apierr.NotFound, "rating %s not found", req.ID)
			}
			return err
		}
		if err := realmscope.Ensure(acting, rt); err != nil {
			return err
		}
		if err := ratingpolicy.CanAuthor(acting, rt.UserID); err != nil {
			return err
		}

		next := *rt
		if req.Rating != nil {
			next.Rating = *req.Rating
		}
		if req.Labels != nil {
			next.Labels = *req.Labels
		}
		if _, err := h.Ratings.Upsert(ctx, next); err != nil {
			return err
		}
		h.Log.Info("rating updated", zap.String("rating_id", ratingID.Hex()))
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}

type rmRatingRequest struct {
	ID string `json:"id"`
}

// HandleRemove deletes a rating. Only the author or an admin may remove it.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)

	var req rmRatingRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	ratingID, err := httpjson.ParseID("rating id", req.ID)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		rt, err := h.Ratings.GetByID(ctx, ratingID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apierr.New(apierr.NotFound, "rating %s not found", req.ID)
			}
			return err
		}
		if err := realmscope.Ensure(acting, rt); err != nil {
			return err
		}
		if err := ratingpolicy.CanAuthor(acting, rt.UserID); err != nil {
			return err
		}

		if _, err := h.Ratings.Delete(ctx, ratingID); err != nil {
			return err
		}
		h.Log.Info("rating removed", zap.String("rating_id", ratingID.Hex()))
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}
