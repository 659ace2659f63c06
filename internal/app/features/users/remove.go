// internal/app/features/users/remove.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/reelhub/reelhub/internal/app/features/shared"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/app/system/authz"
	"github.com/reelhub/reelhub/internal/app/system/httpjson"
	"github.com/reelhub/reelhub/internal/app/system/realmscope"
	"github.com/reelhub/reelhub/internal/app/system/timeouts"
	"github.com/reelhub/reelhub/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type rmUserRequest struct {
	ID string `json:"id"`
}

// HandleRemove deletes a user with their memberships, requests and
// ratings, plus any groups they owned. Admins reach users in their own
// realm; ROOT reaches users anywhere.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)
	if err := authz.RequireRole(acting, authz.RoleAdmin); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	var req rmUserRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	userID, err := httpjson.ParseID("user id", req.ID)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err = txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		target, err := h.Users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apierr.New(apierr.NotFound, "user %s not found", req.ID)
			}
			return err
		}
		if err := realmscope.EnsureOrRoot(acting, target); err != nil {
			return err
		}

		// Groups the user owned go with them, edges and requests first.
		owned, err := h.Groups.ListByOwner(ctx, userID)
		if err != nil {
			return err
		}
		for _, g := range owned {
			if _, err := h.Members.DeleteByGroup(ctx, g.ID); err != nil {
				return err
			}
			if _, err := h.Requests.DeleteByGroup(ctx, g.ID); err != nil {
				return err
			}
			if _, err := h.Groups.Delete(ctx, g.ID); err != nil {
				return err
			}
		}

		if _, err := h.Members.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if _, err := h.Requests.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if _, err := h.Ratings.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if _, err := h.Users.Delete(ctx, userID); err != nil {
			return err
		}

		h.Log.Info("user removed",
			zap.String("user_id", userID.Hex()),
			zap.Int("owned_groups", len(owned)))
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}
