// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an authorized account inside a realm.
//
// NOTE:
//   - Group membership is not embedded on User.
//     Use the group_members collection to discover a user's groups.
//   - Roles is the comma-joined tag set ("ADMIN,USER"); membership is an
//     exact containment check, never a hierarchy. See the authz package.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RealmID    primitive.ObjectID `bson:"realm_id" json:"realm_id"`
	Username   string             `bson:"username" json:"username"`
	UsernameCI string             `bson:"username_ci" json:"-"`
	Password   string             `bson:"password" json:"-"` // bcrypt digest
	Token      string             `bson:"token,omitempty" json:"-"`
	Enabled    bool               `bson:"enabled" json:"enabled"`
	Roles      string             `bson:"roles" json:"roles"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RealmRef implements realmscope.Scoped.
func (u User) RealmRef() primitive.ObjectID { return u.RealmID }
