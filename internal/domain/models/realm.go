// internal/domain/models/realm.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Realm is the tenant boundary. Users, groups, movies, ratings and requests
// are all scoped to exactly one realm; deleting a realm fans out to every
// collection beneath it (see the realms feature).
//
// Note that IDs are global: an ObjectID names the same entity regardless of
// which realm's view it appears in.
type Realm struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RealmRef implements realmscope.Scoped. A realm is its own scope, which
// lets ROOT-level handlers pass a realm through the same guard as any other
// entity when they do want the check.
func (r Realm) RealmRef() primitive.ObjectID { return r.ID }
