package ratingstore_test

import (
	"testing"

	ratingstore "github.com/reelhub/reelhub/internal/app/store/ratings"
	"github.com/reelhub/reelhub/internal/domain/models"
	"github.com/reelhub/reelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Upsert_CreatesThenOverwrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := ratingstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := primitive.NewObjectID()
	user := primitive.NewObjectID()
	movie := primitive.NewObjectID()

	first, err := store.Upsert(ctx, models.Rating{
		RealmID: realm, UserID: user, MovieID: movie, Rating: 3, Labels: "fine",
	})
	if err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	if first.ID == primitive.NilObjectID {
		t.Fatal("expected ID to be assigned")
	}

	second, err := store.Upsert(ctx, models.Rating{
		RealmID: realm, UserID: user, MovieID: movie, Rating: 5, Labels: "rewatched, loved it",
	})
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("repeat rating got new id %s, want %s", second.ID.Hex(), first.ID.Hex())
	}
	if second.Rating != 5 || second.Labels != "rewatched, loved it" {
		t.Errorf("overwrite not applied: rating=%d labels=%q", second.Rating, second.Labels)
	}

	all, err := store.ListByRealm(ctx, realm)
	if err != nil {
		t.Fatalf("ListByRealm failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("got %d ratings for the pair, want 1", len(all))
	}
}

func TestStore_Upsert_LabelOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := ratingstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	stored, err := store.Upsert(ctx, models.Rating{
		RealmID: primitive.NewObjectID(),
		UserID:  primitive.NewObjectID(),
		MovieID: primitive.NewObjectID(),
		Rating:  models.NoRating,
		Labels:  "watchlist",
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if stored.Rating != models.NoRating {
		t.Errorf("Rating = %d, want NoRating", stored.Rating)
	}
}

func TestStore_Upsert_RejectsOutOfRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := ratingstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, bad := range []int{-2, 6} {
		_, err := store.Upsert(ctx, models.Rating{
			RealmID: primitive.NewObjectID(),
			UserID:  primitive.NewObjectID(),
			MovieID: primitive.NewObjectID(),
			Rating:  bad,
		})
		if err == nil {
			t.Errorf("Upsert accepted rating %d", bad)
		}
	}
}

func TestStore_FanOutDeletes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := ratingstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := primitive.NewObjectID()
	user := primitive.NewObjectID()
	movie := primitive.NewObjectID()

	seed := []models.Rating{
		{RealmID: realm, UserID: user, MovieID: movie, Rating: 4},
		{RealmID: realm, UserID: user, MovieID: primitive.NewObjectID(), Rating: 2},
		{RealmID: realm, UserID: primitive.NewObjectID(), MovieID: movie, Rating: 1},
	}
	for _, r := range seed {
		if _, err := store.Upsert(ctx, r); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	n, err := store.DeleteByUser(ctx, user)
	if err != nil {
		t.Fatalf("DeleteByUser failed: %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteByUser removed %d, want 2", n)
	}

	n, err = store.DeleteByMovie(ctx, movie)
	if err != nil {
		t.Fatalf("DeleteByMovie failed: %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteByMovie removed %d, want 1", n)
	}

	left, err := store.ListByRealm(ctx, realm)
	if err != nil {
		t.Fatalf("ListByRealm failed: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("%d ratings left after fan-out deletes, want 0", len(left))
	}
}
