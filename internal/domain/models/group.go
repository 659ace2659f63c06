// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a group of movie-raters inside a realm.
//
// A single user may be in multiple groups. The member list is not embedded
// here; all membership is stored in the group_members collection. The owner
// is not required to appear among the members.
type Group struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	RealmID primitive.ObjectID `bson:"realm_id" json:"realm_id"`
	Name    string             `bson:"name" json:"name"`
	NameCI  string             `bson:"name_ci" json:"-"`
	OwnerID primitive.ObjectID `bson:"owner_id" json:"owner"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RealmRef implements realmscope.Scoped.
func (g Group) RealmRef() primitive.ObjectID { return g.RealmID }

// GroupMember is the authoritative join between users and groups.
// Exactly one document per (group_id, user_id) pair.
type GroupMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RealmID   primitive.ObjectID `bson:"realm_id" json:"realm_id"`
	GroupID   primitive.ObjectID `bson:"group_id" json:"group_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
