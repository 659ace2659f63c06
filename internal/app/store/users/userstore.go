// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/reelhub/reelhub/internal/app/system/authz"
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
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateUsername is returned when the username is already taken.
	// Usernames are unique site-wide, not per realm.
	ErrDuplicateUsername = errors.New("a user with this username already exists")
	errNoRoles           = errors.New("user must carry at least one role")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername looks up a user by case-insensitive username.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"username_ci": text.Fold(username)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByToken looks up a user by session token. The empty token never
// matches; a logged-out user holds an empty token field.
func (s *Store) GetByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, mongo.ErrNoDocuments
	}
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"token": token}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing fields. The Password field
// must already be a bcrypt digest.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.UsernameCI = text.Fold(u.Username)
	if len(authz.ParseRoles(u.Roles)) == 0 {
		return models.User{}, errNoRoles
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}
	return u, nil
}

// Update holds the fields a setuser call may change. Nil pointers leave
// the stored value alone.
type Update struct {
	Username *string
	Password *string // bcrypt digest
	Enabled  *bool
	Roles    *string
}

// Update applies a partial update to a user.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Username != nil {
		set["username"] = *upd.Username
		set["username_ci"] = text.Fold(*upd.Username)
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if upd.Enabled != nil {
		set["enabled"] = *upd.Enabled
	}
	if upd.Roles != nil {
		if len(authz.ParseRoles(*upd.Roles)) == 0 {
			return errNoRoles
		}
		set["roles"] = *upd.Roles
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil && wafflemongo.IsDup(err) {
		return ErrDuplicateUsername
	}
	return err
}

// SetToken stores a new session token for the user. An empty token
// clears the field, ending the session.
func (s *Store) SetToken(ctx context.Context, id primitive.ObjectID, token string) error {
	update := bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}}
	if token == "" {
		update["$unset"] = bson.M{"token": ""}
	} else {
		update["$set"].(bson.M)["token"] = token
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// Delete removes a user document. Callers are responsible for cascading
// deletes across the user's groups, memberships, ratings and requests.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByRealm removes all users in a realm.
// Returns the number of documents deleted.
func (s *Store) DeleteByRealm(ctx context.Context, realmID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"realm_id": realmID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByRealm returns all users in a realm, sorted by folded username.
func (s *Store) ListByRealm(ctx context.Context, realmID primitive.ObjectID) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"realm_id": realmID},
		options.Find().SetSort(bson.D{{Key: "username_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the total number of users across all realms.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
