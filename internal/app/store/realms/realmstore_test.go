package realmstore_test

import (
	"errors"
	"testing"

	realmstore "github.com/reelhub/reelhub/internal/app/store/realms"
	"github.com/reelhub/reelhub/internal/app/system/indexes"
	"github.com/reelhub/reelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateAndGetByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := realmstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "Film School")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}

	got, err := store.GetByName(ctx, "film school")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got realm %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
	if got.Name != "Film School" {
		t.Errorf("Name = %q, original casing lost", got.Name)
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := realmstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := store.Create(ctx, "Shared"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, "SHARED")
	if !errors.Is(err, realmstore.ErrDuplicateName) {
		t.Errorf("got %v, want ErrDuplicateName", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := realmstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm, err := store.Create(ctx, "doomed")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.Delete(ctx, realm.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
}
