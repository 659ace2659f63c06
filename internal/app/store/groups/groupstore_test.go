package groupstore_test

import (
	"errors"
	"testing"

	groupstore "github.com/reelhub/reelhub/internal/app/store/groups"
	"github.com/reelhub/reelhub/internal/domain/models"
	"github.com/reelhub/reelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_FoldsNameAndStamps(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	owner := fix.CreateAdmin(ctx, realm.ID, "owner")

	store := groupstore.New(db)
	g, err := store.Create(ctx, models.Group{
		RealmID: realm.ID,
		OwnerID: owner.ID,
		Name:    "Night OWLS",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.NameCI != "night owls" {
		t.Errorf("NameCI = %q, want %q", g.NameCI, "night owls")
	}
	if g.CreatedAt.IsZero() || g.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Night OWLS" {
		t.Errorf("Name = %q, original casing lost", got.Name)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	owner := fix.CreateAdmin(ctx, realm.ID, "owner")
	other := fix.CreateUser(ctx, realm.ID, "other", "USER")
	g := fix.CreateGroup(ctx, realm.ID, "g", owner.ID)

	store := groupstore.New(db)

	name := "renamed"
	if err := store.Update(ctx, g.ID, groupstore.Update{Name: &name}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "renamed" || got.NameCI != "renamed" {
		t.Errorf("rename not applied: %q / %q", got.Name, got.NameCI)
	}
	if got.OwnerID != owner.ID {
		t.Error("owner changed by a name-only update")
	}

	if err := store.Update(ctx, g.ID, groupstore.Update{OwnerID: &other.ID}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err = store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.OwnerID != other.ID {
		t.Error("owner not reassigned")
	}
	if got.Name != "renamed" {
		t.Error("name changed by an owner-only update")
	}
}

func TestListByRealm_SortedAndScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	other := fix.CreateRealm(ctx, "other")
	owner := fix.CreateAdmin(ctx, realm.ID, "owner")
	fix.CreateGroup(ctx, realm.ID, "Zebras", owner.ID)
	fix.CreateGroup(ctx, realm.ID, "ants", owner.ID)
	fix.CreateGroup(ctx, other.ID, "elsewhere", owner.ID)

	groups, err := groupstore.New(db).ListByRealm(ctx, realm.ID)
	if err != nil {
		t.Fatalf("ListByRealm failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Name != "ants" || groups[1].Name != "Zebras" {
		t.Errorf("order = [%s, %s], want folded-name order", groups[0].Name, groups[1].Name)
	}
}

func TestListByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	owner := fix.CreateAdmin(ctx, realm.ID, "owner")
	other := fix.CreateUser(ctx, realm.ID, "other", "USER")
	fix.CreateGroup(ctx, realm.ID, "a", owner.ID)
	fix.CreateGroup(ctx, realm.ID, "b", owner.ID)
	fix.CreateGroup(ctx, realm.ID, "c", other.ID)

	groups, err := groupstore.New(db).ListByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("got %d groups, want 2", len(groups))
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	owner := fix.CreateAdmin(ctx, realm.ID, "owner")
	g := fix.CreateGroup(ctx, realm.ID, "g", owner.ID)

	store := groupstore.New(db)
	n, err := store.Delete(ctx, g.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
	if _, err := store.GetByID(ctx, g.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetByID after delete = %v, want ErrNoDocuments", err)
	}
}
