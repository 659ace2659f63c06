// internal/app/features/users/add.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/reelhub/reelhub/internal/app/features/shared"
	"github.com/reelhub/reelhub/internal/app/store/members"
	"github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/app/system/authz"
	"github.com/reelhub/reelhub/internal/app/system/credentials"
	"github.com/reelhub/reelhub/internal/app/system/httpjson"
	"github.com/reelhub/reelhub/internal/app/system/realmscope"
	"github.com/reelhub/reelhub/internal/app/system/timeouts"
	"github.com/reelhub/reelhub/internal/app/system/txn"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type addUserRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Groups   []string `json:"groups"`
}

// HandleAdd creates an enabled USER in the admin's realm, optionally
// joining the listed groups.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)
	if err := authz.RequireRole(acting, authz.RoleAdmin); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	var req addUserRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		h.ErrLog.Write(w, r, apierr.New(apierr.Validation, "missing username or password"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		digest, err := credentials.Hash(req.Password)
		if err != nil {
			return err
		}
		token, err := h.Auth.MintToken()
		if err != nil {
			return err
		}

		u, err := h.Users.Create(ctx, models.User{
			RealmID:  acting.RealmID,
			Username: req.Username,
			Password: digest,
			Token:    token,
			Enabled:  true,
			Roles:    authz.JoinRoles(authz.RoleUser),
		})
		if err != nil {
			if errors.Is(err, userstore.ErrDuplicateUsername) {
				return apierr.Wrap(apierr.Validation, err, "username taken")
			}
			return err
		}

		for _, hex := range req.Groups {
			groupID, err := httpjson.ParseID("group id", hex)
			if err != nil {
				return err
			}
			group, err := h.Groups.GetByID(ctx, groupID)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return apierr.New(apierr.NotFound, "group %s not found", hex)
				}
				return err
			}
			if err := realmscope.Ensure(acting, group); err != nil {
				return err
			}
			if err := h.Members.Add(ctx, groupID, u.ID); err != nil && !errors.Is(err, memberstore.ErrDuplicateMembership) {
				return err
			}
		}

		h.Log.Info("user created",
			zap.String("user_id", u.ID.Hex()),
			zap.String("realm_id", acting.RealmID.Hex()))
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}
