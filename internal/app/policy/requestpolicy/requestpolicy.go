// Package requestpolicy holds the standing rules for the group-membership
// request machine: who may open a negotiation in which state, and who may
// settle it. The rules are pure; the requests workflow applies them before
// touching the stores.
package requestpolicy

import (
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/authz"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidOpening rejects REJECTED as an opening state. It is checked on
// its own before any standing rule because an already-joined pair short
// circuits standing but never legalizes a REJECTED submission.
func ValidOpening(status models.RequestStatus) error {
	if status == models.Rejected {
		return apierr.New(apierr.Validation, "cannot open a request as REJECTED")
	}
	return nil
}

// CanSubmit checks whether acting may open (or overwrite) a request that
// would place user into group with the given status.
//
// Admins may submit in any status, including ACCEPTED, which grants
// membership immediately. Non-admins are bound by standing:
//
//   - AWAITING_GROUP is an application, so the applicant must be the
//     acting user.
//   - AWAITING_USER is an invitation, so the acting user must own the
//     group.
//
// REJECTED is never a legal opening state for anyone.
func CanSubmit(acting *models.User, userID primitive.ObjectID, group *models.Group, status models.RequestStatus) error {
	if err := ValidOpening(status); err != nil {
		return err
	}
	if authz.IsAdmin(acting) {
		return nil
	}
	switch status {
	case models.Accepted:
		return apierr.New(apierr.Authorization, "only admins can grant membership directly")
	case models.AwaitingGroup:
		if acting.ID != userID {
			return apierr.New(apierr.Authorization, "only the applicant can apply to a group")
		}
	case models.AwaitingUser:
		if acting.ID != group.OwnerID {
			return apierr.New(apierr.Authorization, "only the group owner can invite a user")
		}
	}
	return nil
}

// CanResolve checks whether acting may settle req to the given status.
//
// Only the terminal states are legal targets. For non-admins, standing
// depends on the pending state: an AWAITING_GROUP request is settled by
// the user named on it, any other by the group's owner.
func CanResolve(acting *models.User, req *models.Request, group *models.Group, status models.RequestStatus) error {
	if status != models.Accepted && status != models.Rejected {
		return apierr.New(apierr.Validation, "a request can only be resolved to ACCEPTED or REJECTED")
	}
	if authz.IsAdmin(acting) {
		return nil
	}
	if req.Status == models.AwaitingGroup {
		if acting.ID != req.UserID {
			return apierr.New(apierr.Authorization, "no standing to resolve this request")
		}
		return nil
	}
	if acting.ID != group.OwnerID {
		return apierr.New(apierr.Authorization, "no standing to resolve this request")
	}
	return nil
}
