// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c      *mongo.Collection
	users  *mongo.Collection
	groups *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:      db.Collection("group_members"),
		users:  db.Collection("users"),
		groups: db.Collection("groups"),
	}
}

var (
	// ErrRealmMismatch is returned when the user and group live in
	// different realms. Membership never crosses the realm boundary.
	ErrRealmMismatch = errors.New("user and group belong to different realms")

	// ErrDuplicateMembership is returned when the edge already exists.
	ErrDuplicateMembership = errors.New("user is already a member of this group")
)

// Add creates a membership edge after enforcing the realm invariant.
func (s *Store) Add(ctx context.Context, groupID, userID primitive.ObjectID) error {
	var g models.Group
	if err := s.groups.FindOne(ctx, bson.M{"_id": groupID}).Decode(&g); err != nil {
		return err
	}

	var u models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&u); err != nil {
		return err
	}
	if g.RealmID != u.RealmID {
		return ErrRealmMismatch
	}

	doc := models.GroupMember{
		ID:        primitive.NewObjectID(),
		RealmID:   g.RealmID,
		GroupID:   groupID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateMembership
		}
		return err
	}
	return nil
}

// Remove deletes the membership edge for (groupID, userID).
func (s *Store) Remove(ctx context.Context, groupID, userID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"group_id": groupID, "user_id": userID})
	return err
}

// Exists checks whether a membership edge exists for (groupID, userID).
func (s *Store) Exists(ctx context.Context, groupID, userID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"group_id": groupID, "user_id": userID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByGroup returns the membership edges for a group.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupMember, error) {
	return s.list(ctx, bson.M{"group_id": groupID})
}

// ListByUser returns the membership edges for a user.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.GroupMember, error) {
	return s.list(ctx, bson.M{"user_id": userID})
}

// ListByRealm returns all membership edges in a realm.
func (s *Store) ListByRealm(ctx context.Context, realmID primitive.ObjectID) ([]models.GroupMember, error) {
	return s.list(ctx, bson.M{"realm_id": realmID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.GroupMember, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.GroupMember
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// DeleteByGroup removes all membership edges for a group.
// Returns the number of documents deleted.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByUser removes all membership edges for a user.
// Returns the number of documents deleted.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByRealm removes all membership edges in a realm.
// Returns the number of documents deleted.
func (s *Store) DeleteByRealm(ctx context.Context, realmID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"realm_id": realmID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
