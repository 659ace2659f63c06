// internal/app/store/ratings/ratingstore.go
package ratingstore

import (
	"context"
	"errors"
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
	return &Store{c: db.Collection("ratings")}
}

var errBadRating = errors.New("rating must be between -1 and 5")

// GetByID loads a rating by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rating, error) {
	var r models.Rating
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Upsert writes the rating for (user, movie). At most one rating exists
// per pair; a repeat submission updates the existing document in place,
// keeping its id. Returns the stored rating.
func (s *Store) Upsert(ctx context.Context, r models.Rating) (models.Rating, error) {
	if !models.ValidRating(r.Rating) {
		return models.Rating{}, errBadRating
	}

	now := time.Now().UTC()
	filter := bson.M{"user_id": r.UserID, "movie_id": r.MovieID}
	update := bson.M{
		"$set": bson.M{
			"realm_id":   r.RealmID,
			"rating":     r.Rating,
			"labels":     r.Labels,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"user_id":    r.UserID,
			"movie_id":   r.MovieID,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.Rating
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return models.Rating{}, err
	}
	return stored, nil
}

// Delete removes a rating document.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByUser removes all ratings authored by a user.
// Returns the number of documents deleted.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByMovie removes all ratings on a movie.
// Returns the number of documents deleted.
func (s *Store) DeleteByMovie(ctx context.Context, movieID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"movie_id": movieID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByRealm removes all ratings in a realm.
// Returns the number of documents deleted.
func (s *Store) DeleteByRealm(ctx context.Context, realmID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"realm_id": realmID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByRealm returns all ratings in a realm.
func (s *Store) ListByRealm(ctx context.Context, realmID primitive.ObjectID) ([]models.Rating, error) {
	cur, err := s.c.Find(ctx, bson.M{"realm_id": realmID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ratings []models.Rating
	if err := cur.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}
