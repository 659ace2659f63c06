// internal/app/features/realms/add.go
package realms

import (
	"context"
	"errors"
	"net/http"

	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/app/system/authz"
	"github.com/reelhub/reelhub/internal/app/system/credentials"
	"github.com/reelhub/reelhub/internal/app/system/httpjson"
	"github.com/reelhub/reelhub/internal/app/system/timeouts"
	"github.com/reelhub/reelhub/internal/app/system/txn"
	"github.com/reelhub/reelhub/internal/app/features/shared"
	"github.com/reelhub/reelhub/internal/app/store/realms"
	"github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type addRealmRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	// Base is the id of an existing realm whose movie catalogue seeds
	// the new one.
	Base string `json:"base"`
}

// HandleAdd creates a realm together with its first admin account.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)
	if err := authz.RequireRole(acting, authz.RoleRoot); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	var req addRealmRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if req.Name == "" || req.Username == "" || req.Password == "" {
		h.ErrLog.Write(w, r, apierr.New(apierr.Validation, "missing name, username or password"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		realm, err := h.Realms.Create(ctx, req.Name)
		if err != nil {
			if errors.Is(err, realmstore.ErrDuplicateName) {
				return apierr.Wrap(apierr.Validation, err, "realm name taken")
			}
			return err
		}

		digest, err := credentials.Hash(req.Password)
		if err != nil {
			return err
		}
		token, err := h.Auth.MintToken()
		if err != nil {
			return err
		}
		admin := models.User{
			RealmID:  realm.ID,
			Username: req.Username,
			Password: digest,
			Token:    token,
			Enabled:  true,
			Roles:    authz.JoinRoles(authz.RoleAdmin, authz.RoleUser),
		}
		if _, err := h.Users.Create(ctx, admin); err != nil {
			if errors.Is(err, userstore.ErrDuplicateUsername) {
				return apierr.Wrap(apierr.Validation, err, "username taken")
			}
			return err
		}

		if req.Base != "" {
			baseID, err := httpjson.ParseID("base", req.Base)
			if err != nil {
				return err
			}
			base, err := h.Realms.GetByID(ctx, baseID)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return apierr.New(apierr.NotFound, "base realm %s not found", req.Base)
				}
				return err
			}
			n, err := h.Movies.CloneRealm(ctx, base.ID, realm.ID)
			if err != nil {
				return err
			}
			h.Log.Info("seeded realm catalogue",
				zap.String("realm_id", realm.ID.Hex()),
				zap.String("base", req.Base),
				zap.Int("movies", n))
		}

		h.Log.Info("realm created",
			zap.String("realm_id", realm.ID.Hex()),
			zap.String("name", realm.Name))
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}
