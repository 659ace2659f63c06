package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/reelhub/reelhub/internal/app/system/credentials"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateRealm creates a test realm with the given name.
func (f *Fixtures) CreateRealm(ctx context.Context, name string) models.Realm {
	f.t.Helper()

	now := time.Now().UTC()
	realm := models.Realm{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("realms").InsertOne(ctx, realm); err != nil {
		f.t.Fatalf("failed to create test realm: %v", err)
	}
	return realm
}

// CreateUser creates an enabled test user with the given roles and a
// fresh token. The password is stored hashed; the plaintext is the
// username with "-pw" appended.
func (f *Fixtures) CreateUser(ctx context.Context, realmID primitive.ObjectID, username, roles string) models.User {
	f.t.Helper()

	digest, err := credentials.Hash(username + "-pw")
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		RealmID:    realmID,
		Username:   username,
		UsernameCI: text.Fold(username),
		Password:   digest,
		Token:      "tok-" + username,
		Enabled:    true,
		Roles:      roles,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test user carrying the ADMIN and USER roles.
func (f *Fixtures) CreateAdmin(ctx context.Context, realmID primitive.ObjectID, username string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, realmID, username, "ADMIN,USER")
}

// CreateRoot creates a test user carrying the ROOT, ADMIN and USER roles.
func (f *Fixtures) CreateRoot(ctx context.Context, realmID primitive.ObjectID, username string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, realmID, username, "ROOT,ADMIN,USER")
}

// CreateGroup creates a test group owned by the given user.
func (f *Fixtures) CreateGroup(ctx context.Context, realmID primitive.ObjectID, name string, ownerID primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:        primitive.NewObjectID(),
		RealmID:   realmID,
		Name:      name,
		NameCI:    text.Fold(name),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateMembership links a user to a group.
func (f *Fixtures) CreateMembership(ctx context.Context, group models.Group, userID primitive.ObjectID) models.GroupMember {
	f.t.Helper()

	member := models.GroupMember{
		ID:        primitive.NewObjectID(),
		RealmID:   group.RealmID,
		GroupID:   group.ID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("group_members").InsertOne(ctx, member); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return member
}

// CreateMovie creates a test movie in the given realm.
func (f *Fixtures) CreateMovie(ctx context.Context, realmID primitive.ObjectID, name string) models.Movie {
	f.t.Helper()

	now := time.Now().UTC()
	movie := models.Movie{
		ID:        primitive.NewObjectID(),
		RealmID:   realmID,
		IMDB:      "tt0000000",
		Name:      name,
		NameCI:    text.Fold(name),
		Director:  "Test Director",
		Actors:    "Actor One, Actor Two",
		Year:      2000,
		Minutes:   100,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("movies").InsertOne(ctx, movie); err != nil {
		f.t.Fatalf("failed to create test movie: %v", err)
	}
	return movie
}

// CreateRating creates a test rating by a user on a movie.
func (f *Fixtures) CreateRating(ctx context.Context, realmID, userID, movieID primitive.ObjectID, rating int, labels string) models.Rating {
	f.t.Helper()

	now := time.Now().UTC()
	r := models.Rating{
		ID:        primitive.NewObjectID(),
		RealmID:   realmID,
		UserID:    userID,
		MovieID:   movieID,
		Rating:    rating,
		Labels:    labels,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("ratings").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test rating: %v", err)
	}
	return r
}

// CreateRequest creates a pending membership request.
func (f *Fixtures) CreateRequest(ctx context.Context, realmID, userID, groupID primitive.ObjectID, status models.RequestStatus) models.Request {
	f.t.Helper()

	now := time.Now().UTC()
	req := models.Request{
		ID:        primitive.NewObjectID(),
		RealmID:   realmID,
		UserID:    userID,
		GroupID:   groupID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("requests").InsertOne(ctx, req); err != nil {
		f.t.Fatalf("failed to create test request: %v", err)
	}
	return req
}
