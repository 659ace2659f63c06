// internal/app/features/movies/movies.go
package movies

import (
	"context"
	"errors"
	"net/http"

	"github.com/reelhub/reelhub/internal/app/features/shared"
	"github.com/reelhub/reelhub/internal/app/store/movies"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/app/system/authz"
	"github.com/reelhub/reelhub/internal/app/system/httpjson"
	"github.com/reelhub/reelhub/internal/app/system/realmscope"
	"github.com/reelhub/reelhub/internal/app/system/timeouts"
	"github.com/reelhub/reelhub/internal/app/system/txn"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type addMovieRequest struct {
	IMDB     string `json:"imdb"`
	Name     string `json:"name"`
	Director string `json:"director"`
	Actors   string `json:"actors"`
	Year     int    `json:"year"`
	Minutes  int    `json:"minutes"`
}

// HandleAdd adds a movie to the admin's realm catalogue.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)
	if err := authz.RequireRole(acting, authz.RoleAdmin); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	var req addMovieRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if req.IMDB == "" || req.Name == "" || req.Director == "" {
		h.ErrLog.Write(w, r, apierr.New(apierr.Validation, "missing imdb, name or director"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		m, err := h.Movies.Create(ctx, models.Movie{
			RealmID:  acting.RealmID,
			IMDB:     req.IMDB,
			Name:     req.Name,
			Director: req.Director,
			Actors:   req.Actors,
			Year:     req.Year,
			Minutes:  req.Minutes,
		})
		if err != nil {
			return err
		}
		h.Log.Info("movie added",
			zap.String("movie_id", m.ID.Hex()),
			zap.String("realm_id", acting.RealmID.Hex()))
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}

type setMovieRequest struct {
	ID       string  `json:"id"`
	IMDB     *string `json:"imdb"`
	Name     *string `json:"name"`
	Director *string `json:"director"`
	Actors   *string `json:"actors"`
	Year     *int    `json:"year"`
	Minutes  *int    `json:"minutes"`
}

// HandleSet applies a partial update to a movie in the admin's realm.
func (h *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)
	if err := authz.RequireRole(acting, authz.RoleAdmin); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	var req setMovieRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	movieID, err := httpjson.ParseID("movie id", req.ID)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		m, err := h.Movies.GetByID(ctx, movieID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apierr.New(apierr.NotFound, "movie %s not found", req.ID)
			}
			return err
		}
		if err := realmscope.Ensure(acting, m); err != nil {
			return err
		}

		if err := h.Movies.Update(ctx, movieID, moviestore.Update{
			IMDB:     req.IMDB,
			Name:     req.Name,
			Director: req.Director,
			Actors:   req.Actors,
			Year:     req.Year,
			Minutes:  req.Minutes,
		}); err != nil {
			return err
		}
		h.Log.Info("movie updated", zap.String("movie_id", movieID.Hex()))
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}

type rmMovieRequest struct {
	ID string `json:"id"`
}

// HandleRemove deletes a movie and its ratings.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)
	if err := authz.RequireRole(acting, authz.RoleAdmin); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	var req rmMovieRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	movieID, err := httpjson.ParseID("movie id", req.ID)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err = txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		m, err := h.Movies.GetByID(ctx, movieID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apierr.New(apierr.NotFound, "movie %s not found", req.ID)
			}
			return err
		}
		if err := realmscope.Ensure(acting, m); err != nil {
			return err
		}

		if _, err := h.Ratings.DeleteByMovie(ctx, movieID); err != nil {
			return err
		}
		if _, err := h.Movies.Delete(ctx, movieID); err != nil {
			return err
		}
		h.Log.Info("movie removed", zap.String("movie_id", movieID.Hex()))
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}
