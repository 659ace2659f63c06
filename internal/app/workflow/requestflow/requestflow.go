// Package requestflow drives the group-membership request machine.
//
// A request is a negotiation between a user and a group. It opens in one
// of the awaiting states (who applied decides which side must approve)
// and settles to ACCEPTED or REJECTED. Settled requests are never stored:
// acceptance writes the membership edge and the record is deleted either
// way.
package requestflow

import (
	"context"
	"errors"

	"github.com/reelhub/reelhub/internal/app/policy/requestpolicy"
	"github.com/reelhub/reelhub/internal/app/store/groups"
	"github.com/reelhub/reelhub/internal/app/store/members"
	"github.com/reelhub/reelhub/internal/app/store/requests"
	"github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/realmscope"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Flow struct {
	users    *userstore.Store
	groups   *groupstore.Store
	members  *memberstore.Store
	requests *requeststore.Store
	log      *zap.Logger
}

func New(users *userstore.Store, groups *groupstore.Store, members *memberstore.Store, requests *requeststore.Store, log *zap.Logger) *Flow {
	return &Flow{
		users:    users,
		groups:   groups,
		members:  members,
		requests: requests,
		log:      log,
	}
}

// Submit opens or overwrites the request placing user into group with
// the given status. Submitting for a pair that is already joined
// succeeds without writing anything. An admin submitting ACCEPTED grants
// membership immediately and leaves no record.
func (f *Flow) Submit(ctx context.Context, acting *models.User, userID, groupID primitive.ObjectID, status models.RequestStatus) error {
	group, err := f.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apierr.New(apierr.NotFound, "group %s not found", groupID.Hex())
		}
		return err
	}
	user, err := f.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apierr.New(apierr.NotFound, "user %s not found", userID.Hex())
		}
		return err
	}

	if err := realmscope.EnsureOrRoot(acting, group); err != nil {
		return err
	}
	if err := realmscope.EnsureOrRoot(acting, user); err != nil {
		return err
	}
	if user.RealmID != group.RealmID {
		return apierr.New(apierr.Scope, "user and group belong to different realms")
	}

	if err := requestpolicy.ValidOpening(status); err != nil {
		return err
	}

	// An already-joined pair is settled before standing is considered:
	// whoever asks, the answer is that there is nothing to negotiate.
	joined, err := f.members.Exists(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if joined {
		return nil
	}

	if err := requestpolicy.CanSubmit(acting, userID, group, status); err != nil {
		return err
	}

	if status == models.Accepted {
		if err := f.members.Add(ctx, groupID, userID); err != nil && !errors.Is(err, memberstore.ErrDuplicateMembership) {
			return err
		}
		// Membership settles any negotiation still open for the pair.
		if _, err := f.requests.DeleteByPair(ctx, userID, groupID); err != nil {
			return err
		}
		f.log.Info("membership granted directly",
			zap.String("user_id", userID.Hex()),
			zap.String("group_id", groupID.Hex()))
		return nil
	}

	req := models.Request{
		RealmID: group.RealmID,
		UserID:  userID,
		GroupID: groupID,
		Status:  status,
	}
	if _, err := f.requests.Upsert(ctx, req); err != nil {
		return err
	}
	f.log.Info("request submitted",
		zap.String("user_id", userID.Hex()),
		zap.String("group_id", groupID.Hex()),
		zap.String("status", string(status)))
	return nil
}

// Resolve settles a pending request. Acceptance writes the membership
// edge; the record is deleted in either case.
func (f *Flow) Resolve(ctx context.Context, acting *models.User, requestID primitive.ObjectID, status models.RequestStatus) error {
	req, err := f.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apierr.New(apierr.NotFound, "request %s not found", requestID.Hex())
		}
		return err
	}
	group, err := f.groups.GetByID(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apierr.New(apierr.NotFound, "group %s not found", req.GroupID.Hex())
		}
		return err
	}

	if err := realmscope.EnsureOrRoot(acting, req); err != nil {
		return err
	}

	if err := requestpolicy.CanResolve(acting, req, group, status); err != nil {
		return err
	}

	if status == models.Accepted {
		if err := f.members.Add(ctx, group.ID, req.UserID); err != nil && !errors.Is(err, memberstore.ErrDuplicateMembership) {
			return err
		}
	}

	if _, err := f.requests.Delete(ctx, req.ID); err != nil {
		return err
	}
	f.log.Info("request resolved",
		zap.String("request_id", req.ID.Hex()),
		zap.String("status", string(status)))
	return nil
}
