// internal/app/store/requests/requeststore.go
package requeststore

import (
	"context"
	"time"

	"github.com/reelhub/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("requests")}
}

// GetByID loads a request by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Request, error) {
	var r models.Request
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetByUserAndGroup loads the open request for (userID, groupID).
// Returns mongo.ErrNoDocuments when none is pending.
func (s *Store) GetByUserAndGroup(ctx context.Context, userID, groupID primitive.ObjectID) (*models.Request, error) {
	var r models.Request
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID, "group_id": groupID}).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Upsert writes the open request for (user, group). At most one request
// exists per pair; a resubmission overwrites the earlier one under the
// same id. Returns the stored request.
func (s *Store) Upsert(ctx context.Context, r models.Request) (models.Request, error) {
	now := time.Now().UTC()
	filter := bson.M{"user_id": r.UserID, "group_id": r.GroupID}
	update := bson.M{
		"$set": bson.M{
			"realm_id":   r.RealmID,
			"status":     r.Status,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"user_id":    r.UserID,
			"group_id":   r.GroupID,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.Request
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return models.Request{}, err
	}
	return stored, nil
}

// Delete removes a request document.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByPair removes the open request for (userID, groupID), if any.
// Returns the number of documents deleted (0 or 1).
func (s *Store) DeleteByPair(ctx context.Context, userID, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID, "group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByUser removes all pending requests naming a user.
// Returns the number of documents deleted.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByGroup removes all pending requests naming a group.
// Returns the number of documents deleted.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByRealm removes all pending requests in a realm.
// Returns the number of documents deleted.
func (s *Store) DeleteByRealm(ctx context.Context, realmID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"realm_id": realmID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByRealm returns all pending requests in a realm.
func (s *Store) ListByRealm(ctx context.Context, realmID primitive.ObjectID) ([]models.Request, error) {
	cur, err := s.c.Find(ctx, bson.M{"realm_id": realmID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var requests []models.Request
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}
