// Package grouppolicy holds the ownership rules for groups.
package grouppolicy

import (
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/authz"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanAssignOwner checks whether acting may create or hand over a group
// owned by ownerID. Any user may own a group they create themselves;
// naming someone else requires the ADMIN role.
func CanAssignOwner(acting *models.User, ownerID primitive.ObjectID) error {
	if acting.ID == ownerID || authz.IsAdmin(acting) {
		return nil
	}
	return apierr.New(apierr.Authorization, "only admins can assign another owner")
}

// CanManage checks whether acting may edit or remove the group. The
// owner always can; so can any admin.
func CanManage(acting *models.User, group *models.Group) error {
	if acting.ID == group.OwnerID || authz.IsAdmin(acting) {
		return nil
	}
	return apierr.New(apierr.Authorization, "only the owner or an admin can manage this group")
}
