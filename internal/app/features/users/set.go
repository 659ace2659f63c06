// internal/app/features/users/set.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/reelhub/reelhub/internal/app/features/shared"
	"github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/app/system/authz"
	"github.com/reelhub/reelhub/internal/app/system/credentials"
	"github.com/reelhub/reelhub/internal/app/system/httpjson"
	"github.com/reelhub/reelhub/internal/app/system/realmscope"
	"github.com/reelhub/reelhub/internal/app/system/timeouts"
	"github.com/reelhub/reelhub/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type setUserRequest struct {
	ID       string  `json:"id"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Enabled  *bool   `json:"enabled"`
}

// HandleSet applies a partial update to a user in the admin's realm.
func (h *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)
	if err := authz.RequireRole(acting, authz.RoleAdmin); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	var req setUserRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	userID, err := httpjson.ParseID("user id", req.ID)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if req.Username != nil && *req.Username == "" {
		h.ErrLog.Write(w, r, apierr.New(apierr.Validation, "username cannot be empty"))
		return
	}
	if req.Password != nil && *req.Password == "" {
		h.ErrLog.Write(w, r, apierr.New(apierr.Validation, "password cannot be empty"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		target, err := h.Users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apierr.New(apierr.NotFound, "user %s not found", req.ID)
			}
			return err
		}
		if err := realmscope.Ensure(acting, target); err != nil {
			return err
		}

		upd := userstore.Update{
			Username: req.Username,
			Enabled:  req.Enabled,
		}
		if req.Password != nil {
			digest, err := credentials.Hash(*req.Password)
			if err != nil {
				return err
			}
			upd.Password = &digest
		}
		if err := h.Users.Update(ctx, userID, upd); err != nil {
			if errors.Is(err, userstore.ErrDuplicateUsername) {
				return apierr.Wrap(apierr.Validation, err, "username taken")
			}
			return err
		}

		h.Log.Info("user updated", zap.String("user_id", userID.Hex()))
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}
