// internal/app/store/realms/realmstore.go
package realmstore

import (
	"context"
	"errors"
	"time"

	"github.com/reelhub/reelhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("realms")}
}

// ErrDuplicateName is returned when a realm with the same folded name
// already exists.
var ErrDuplicateName = errors.New("a realm with this name already exists")

// GetByID loads a realm by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Realm, error) {
	var r models.Realm
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetByName looks up a realm by case-insensitive name.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByName(ctx context.Context, name string) (*models.Realm, error) {
	var r models.Realm
	if err := s.c.FindOne(ctx, bson.M{"name_ci": text.Fold(name)}).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a new realm after normalizing its name.
func (s *Store) Create(ctx context.Context, name string) (models.Realm, error) {
	now := time.Now().UTC()
	r := models.Realm{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Realm{}, ErrDuplicateName
		}
		return models.Realm{}, err
	}
	return r, nil
}

// Delete removes a realm document. Callers are responsible for cascading
// deletes across the realm's users, groups, movies, ratings and requests.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

