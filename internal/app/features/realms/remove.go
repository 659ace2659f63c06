// internal/app/features/realms/remove.go
package realms

import (
	"context"
	"errors"
	"net/http"

	"github.com/reelhub/reelhub/internal/app/features/shared"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/app/system/authz"
	"github.com/reelhub/reelhub/internal/app/system/httpjson"
	"github.com/reelhub/reelhub/internal/app/system/timeouts"
	"github.com/reelhub/reelhub/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type rmRealmRequest struct {
	ID string `json:"id"`
}

// HandleRemove deletes a realm, fanning out to every collection beneath
// it. A ROOT user cannot remove the realm they live in.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)
	if err := authz.RequireRole(acting, authz.RoleRoot); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	var req rmRealmRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	realmID, err := httpjson.ParseID("realm id", req.ID)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if realmID == acting.RealmID {
		h.ErrLog.Write(w, r, apierr.New(apierr.Validation, "cannot remove your own realm"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err = txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		if _, err := h.Realms.GetByID(ctx, realmID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apierr.New(apierr.NotFound, "realm %s not found", realmID.Hex())
			}
			return err
		}

		if _, err := h.Requests.DeleteByRealm(ctx, realmID); err != nil {
			return err
		}
		if _, err := h.Ratings.DeleteByRealm(ctx, realmID); err != nil {
			return err
		}
		if _, err := h.Members.DeleteByRealm(ctx, realmID); err != nil {
			return err
		}
		if _, err := h.Movies.DeleteByRealm(ctx, realmID); err != nil {
			return err
		}
		if _, err := h.Groups.DeleteByRealm(ctx, realmID); err != nil {
			return err
		}
		if _, err := h.Users.DeleteByRealm(ctx, realmID); err != nil {
			return err
		}
		if _, err := h.Realms.Delete(ctx, realmID); err != nil {
			return err
		}

		h.Log.Info("realm removed", zap.String("realm_id", realmID.Hex()))
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}
