// internal/app/store/movies/moviestore.go
package moviestore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
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
	return &Store{c: db.Collection("movies")}
}

// GetByID loads a movie by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Movie, error) {
	var m models.Movie
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new movie into its realm's catalogue.
func (s *Store) Create(ctx context.Context, m models.Movie) (models.Movie, error) {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	m.NameCI = text.Fold(m.Name)

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Movie{}, err
	}
	return m, nil
}

// Update holds the fields a movie edit may change. Nil pointers leave
// the stored value alone.
type Update struct {
	IMDB     *string
	Name     *string
	Director *string
	Actors   *string
	Year     *int
	Minutes  *int
}

// Update applies a partial update to a movie.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.IMDB != nil {
		set["imdb"] = *upd.IMDB
	}
	if upd.Name != nil {
		set["name"] = *upd.Name
		set["name_ci"] = text.Fold(*upd.Name)
	}
	if upd.Director != nil {
		set["director"] = *upd.Director
	}
	if upd.Actors != nil {
		set["actors"] = *upd.Actors
	}
	if upd.Year != nil {
		set["year"] = *upd.Year
	}
	if upd.Minutes != nil {
		set["minutes"] = *upd.Minutes
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete removes a movie document. Callers are responsible for removing
// the movie's ratings.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByRealm removes all movies in a realm.
// Returns the number of documents deleted.
func (s *Store) DeleteByRealm(ctx context.Context, realmID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"realm_id": realmID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByRealm returns all movies in a realm, sorted by folded name.
func (s *Store) ListByRealm(ctx context.Context, realmID primitive.ObjectID) ([]models.Movie, error) {
	cur, err := s.c.Find(ctx, bson.M{"realm_id": realmID},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var movies []models.Movie
	if err := cur.All(ctx, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// CloneRealm copies every movie from one realm's catalogue into another,
// assigning fresh IDs. Used when a new realm starts from a template realm.
// Returns the number of movies copied.
func (s *Store) CloneRealm(ctx context.Context, fromRealmID, toRealmID primitive.ObjectID) (int, error) {
	src, err := s.ListByRealm(ctx, fromRealmID)
	if err != nil {
		return 0, err
	}
	if len(src) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(src))
	for _, m := range src {
		m.ID = primitive.NewObjectID()
		m.RealmID = toRealmID
		m.CreatedAt = now
		m.UpdatedAt = now
		docs = append(docs, m)
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}
