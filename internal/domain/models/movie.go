// internal/domain/models/movie.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movie can be edited by admins, and rated, and so on and so forth.
type Movie struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	RealmID  primitive.ObjectID `bson:"realm_id" json:"realm_id"`
	IMDB     string             `bson:"imdb" json:"imdb"`
	Name     string             `bson:"name" json:"name"`
	NameCI   string             `bson:"name_ci" json:"-"`
	Director string             `bson:"director" json:"director"`
	Actors   string             `bson:"actors,omitempty" json:"actors"`
	Year     int                `bson:"year" json:"year"`
	Minutes  int                `bson:"minutes" json:"minutes"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// RealmRef implements realmscope.Scoped.
func (m Movie) RealmRef() primitive.ObjectID { return m.RealmID }
