// Package ratingpolicy holds the authorship rules for ratings.
package ratingpolicy

import (
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/authz"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanAuthor checks whether acting may write or remove a rating authored
// by authorID. Users manage their own ratings; admins manage anyone's.
func CanAuthor(acting *models.User, authorID primitive.ObjectID) error {
	if acting.ID == authorID || authz.IsAdmin(acting) {
		return nil
	}
	return apierr.New(apierr.Authorization, "only the author or an admin can manage this rating")
}
