package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/indexes"
	"github.com/reelhub/reelhub/internal/domain/models"
	"github.com/reelhub/reelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		RealmID:  primitive.NewObjectID(),
		Username: "Alice",
		Password: "digest",
		Enabled:  true,
		Roles:    "USER",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.UsernameCI != "alice" {
		t.Errorf("UsernameCI = %q, want %q", created.UsernameCI, "alice")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_RequiresRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		RealmID:  primitive.NewObjectID(),
		Username: "roleless",
		Roles:    "",
	})
	if err == nil {
		t.Fatal("expected error for user without roles")
	}
}

func TestStore_Create_DuplicateUsernameAcrossRealms(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := store.Create(ctx, models.User{
		RealmID: primitive.NewObjectID(), Username: "Bob", Roles: "USER",
	}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same name, different case, different realm: still a conflict.
	_, err := store.Create(ctx, models.User{
		RealmID: primitive.NewObjectID(), Username: "BOB", Roles: "USER",
	})
	if !errors.Is(err, userstore.ErrDuplicateUsername) {
		t.Errorf("got %v, want ErrDuplicateUsername", err)
	}
}

func TestStore_GetByUsername_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		RealmID: primitive.NewObjectID(), Username: "Carol", Roles: "USER",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByUsername(ctx, "cArOl")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got user %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
}

func TestStore_GetByToken_EmptyNeverMatches(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A logged-out user has no token field at all, but guard anyway.
	if _, err := store.GetByToken(ctx, ""); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("got %v, want ErrNoDocuments", err)
	}
}

func TestStore_SetToken_RotateAndClear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{
		RealmID: primitive.NewObjectID(), Username: "dave", Roles: "USER",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetToken(ctx, u.ID, "tok-1"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	got, err := store.GetByToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("GetByToken failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("token resolved to %s, want %s", got.ID.Hex(), u.ID.Hex())
	}

	if err := store.SetToken(ctx, u.ID, ""); err != nil {
		t.Fatalf("SetToken clear failed: %v", err)
	}
	if _, err := store.GetByToken(ctx, "tok-1"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("cleared token still resolves: %v", err)
	}
}

func TestStore_Update_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{
		RealmID: primitive.NewObjectID(), Username: "eve", Enabled: true, Roles: "USER",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	disabled := false
	if err := store.Update(ctx, u.ID, userstore.Update{Enabled: &disabled}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Enabled {
		t.Error("expected user to be disabled")
	}
	if got.Username != "eve" {
		t.Errorf("Username changed to %q by an unrelated update", got.Username)
	}
}

func TestStore_ListByRealm_SortedAndScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realmA := primitive.NewObjectID()
	realmB := primitive.NewObjectID()
	for _, name := range []string{"Zed", "amy", "Mia"} {
		if _, err := store.Create(ctx, models.User{RealmID: realmA, Username: name, Roles: "USER"}); err != nil {
			t.Fatalf("Create %s failed: %v", name, err)
		}
	}
	if _, err := store.Create(ctx, models.User{RealmID: realmB, Username: "other", Roles: "USER"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.ListByRealm(ctx, realmA)
	if err != nil {
		t.Fatalf("ListByRealm failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d users, want 3", len(got))
	}
	want := []string{"amy", "Mia", "Zed"}
	for i, u := range got {
		if u.Username != want[i] {
			t.Errorf("position %d: got %q, want %q", i, u.Username, want[i])
		}
	}
}

func TestStore_DeleteByRealm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := primitive.NewObjectID()
	for _, name := range []string{"u1", "u2"} {
		if _, err := store.Create(ctx, models.User{RealmID: realm, Username: name, Roles: "USER"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	n, err := store.DeleteByRealm(ctx, realm)
	if err != nil {
		t.Fatalf("DeleteByRealm failed: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d users, want 2", n)
	}
}
