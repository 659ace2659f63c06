// internal/domain/models/rating.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoRating is the stored value when a user labels a movie without giving
// it a numeric rating.
const NoRating = -1

// Rating is a label on a movie, authored by a user, optionally with a
// numeric rating. At most one rating exists per (user, movie) pair; the
// store upserts on that key and last write wins.
type Rating struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RealmID primitive.ObjectID `bson:"realm_id" json:"realm_id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user"`
	MovieID primitive.ObjectID `bson:"movie_id" json:"movie"`
	Rating  int                `bson:"rating" json:"rating"` // NoRating..5
	Labels  string             `bson:"labels" json:"labels"` // free text, unvalidated

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RealmRef implements realmscope.Scoped.
func (r Rating) RealmRef() primitive.ObjectID { return r.RealmID }

// ValidRating reports whether n is a legal stored rating value.
func ValidRating(n int) bool { return n >= NoRating && n <= 5 }
