// internal/app/features/groups/groups.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/reelhub/reelhub/internal/app/features/shared"
	"github.com/reelhub/reelhub/internal/app/policy/grouppolicy"
	"github.com/reelhub/reelhub/internal/app/store/groups"
	"github.com/reelhub/reelhub/internal/app/store/members"
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

type addGroupRequest struct {
	Name    string   `json:"name"`
	Owner   string   `json:"owner"`
	Members []string `json:"members"`
}

// HandleAdd creates a group. The owner defaults to the caller; naming
// someone else takes the ADMIN role.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)

	var req addGroupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if req.Name == "" {
		h.ErrLog.Write(w, r, apierr.New(apierr.Validation, "missing group name"))
		return
	}

	ownerID := acting.ID
	if req.Owner != "" {
		var err error
		if ownerID, err = httpjson.ParseID("owner id", req.Owner); err != nil {
			h.ErrLog.Write(w, r, err)
			return
		}
	}
	if err := grouppolicy.CanAssignOwner(acting, ownerID); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		owner, err := h.Users.GetByID(ctx, ownerID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apierr.New(apierr.NotFound, "owner %s not found", req.Owner)
			}
			return err
		}
		if err := realmscope.Ensure(acting, owner); err != nil {
			return err
		}

		group, err := h.Groups.Create(ctx, models.Group{
			RealmID: acting.RealmID,
			Name:    req.Name,
			OwnerID: ownerID,
		})
		if err != nil {
			return err
		}

		if err := h.replaceMembers(ctx, acting, &group, req.Members); err != nil {
			return err
		}

		h.Log.Info("group created",
			zap.String("group_id", group.ID.Hex()),
			zap.String("owner_id", ownerID.Hex()))
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}

type setGroupRequest struct {
	ID      string    `json:"id"`
	Name    *string   `json:"name"`
	Owner   *string   `json:"owner"`
	Members *[]string `json:"members"`
}

// HandleSet edits a group. A nil members field leaves the membership
// alone; a present one replaces it wholesale.
func (h *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)

	var req setGroupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	groupID, err := httpjson.ParseID("group id", req.ID)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	if req.Name != nil && *req.Name == "" {
		h.ErrLog.Write(w, r, apierr.New(apierr.Validation, "group name cannot be empty"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err = txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		group, err := h.Groups.GetByID(ctx, groupID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apierr.New(apierr.NotFound, "group %s not found", req.ID)
			}
			return err
		}
		if err := realmscope.Ensure(acting, group); err != nil {
			return err
		}
		if err := grouppolicy.CanManage(acting, group); err != nil {
			return err
		}

		upd := groupstore.Update{Name: req.Name}
		if req.Owner != nil {
			newOwnerID, err := httpjson.ParseID("owner id", *req.Owner)
			if err != nil {
				return err
			}
			if err := grouppolicy.CanAssignOwner(acting, newOwnerID); err != nil {
				return err
			}
			owner, err := h.Users.GetByID(ctx, newOwnerID)
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return apierr.New(apierr.NotFound, "owner %s not found", *req.Owner)
				}
				return err
			}
			if err := realmscope.Ensure(acting, owner); err != nil {
				return err
			}
			upd.OwnerID = &newOwnerID
		}
		if err := h.Groups.Update(ctx, groupID, upd); err != nil {
			return err
		}

		if req.Members != nil {
			if _, err := h.Members.DeleteByGroup(ctx, groupID); err != nil {
				return err
			}
			if err := h.replaceMembers(ctx, acting, group, *req.Members); err != nil {
				return err
			}
		}

		h.Log.Info("group updated", zap.String("group_id", groupID.Hex()))
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}

type rmGroupRequest struct {
	ID string `json:"id"`
}

// HandleRemove deletes a group with its memberships and requests.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	acting := auth.CurrentUser(r)

	var req rmGroupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	groupID, err := httpjson.ParseID("group id", req.ID)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err = txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		group, err := h.Groups.GetByID(ctx, groupID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apierr.New(apierr.NotFound, "group %s not found", req.ID)
			}
			return err
		}
		if err := realmscope.Ensure(acting, group); err != nil {
			return err
		}
		if err := grouppolicy.CanManage(acting, group); err != nil {
			return err
		}

		if _, err := h.Members.DeleteByGroup(ctx, groupID); err != nil {
			return err
		}
		if _, err := h.Requests.DeleteByGroup(ctx, groupID); err != nil {
			return err
		}
		if _, err := h.Groups.Delete(ctx, groupID); err != nil {
			return err
		}

		h.Log.Info("group removed", zap.String("group_id", groupID.Hex()))
		return nil
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	shared.RespondRealmView(w, r, h.View, h.ErrLog, acting.RealmID)
}

// replaceMembers adds every listed user to the group after the realm
// guard. Callers clear the previous membership first when replacing.
func (h *Handler) replaceMembers(ctx context.Context, acting *models.User, group *models.Group, memberIDs []string) error {
	for _, hex := range memberIDs {
		userID, err := httpjson.ParseID("member id", hex)
		if err != nil {
			return err
		}
		member, err := h.Users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apierr.New(apierr.NotFound, "member %s not found", hex)
			}
			return err
		}
		if err := realmscope.Ensure(acting, member); err != nil {
			return err
		}
		if err := h.Members.Add(ctx, group.ID, userID); err != nil && !errors.Is(err, memberstore.ErrDuplicateMembership) {
			return err
		}
	}
	return nil
}
