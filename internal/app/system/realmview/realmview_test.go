package realmview_test

import (
	"testing"

	"github.com/reelhub/reelhub/internal/app/system/realmview"
	"github.com/reelhub/reelhub/internal/domain/models"
	"github.com/reelhub/reelhub/internal/testutil"
)

func TestBuild_CrossReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	realm := fx.CreateRealm(ctx, "cine")
	alice := fx.CreateUser(ctx, realm.ID, "alice", "USER")
	bob := fx.CreateUser(ctx, realm.ID, "bob", "USER")
	group := fx.CreateGroup(ctx, realm.ID, "noir fans", bob.ID)
	fx.CreateMembership(ctx, group, alice.ID)
	movie := fx.CreateMovie(ctx, realm.ID, "The Third Man")
	rating := fx.CreateRating(ctx, realm.ID, alice.ID, movie.ID, 5, "classic")
	req := fx.CreateRequest(ctx, realm.ID, bob.ID, group.ID, models.AwaitingGroup)

	view, err := realmview.New(db).Build(ctx, realm.ID)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if view.ID != realm.ID.Hex() || view.Name != "cine" {
		t.Errorf("realm header: got %s/%s", view.ID, view.Name)
	}
	if len(view.Users) != 2 || len(view.Groups) != 1 || len(view.Movies) != 1 ||
		len(view.Ratings) != 1 || len(view.Requests) != 1 {
		t.Fatalf("entity counts: %d users, %d groups, %d movies, %d ratings, %d requests",
			len(view.Users), len(view.Groups), len(view.Movies), len(view.Ratings), len(view.Requests))
	}

	var aliceView models.UserView
	for _, u := range view.Users {
		if u.ID == alice.ID.Hex() {
			aliceView = u
		}
	}
	if len(aliceView.Groups) != 1 || aliceView.Groups[0] != group.ID.Hex() {
		t.Errorf("alice groups: got %v, want [%s]", aliceView.Groups, group.ID.Hex())
	}
	if len(aliceView.Ratings) != 1 || aliceView.Ratings[0] != rating.ID.Hex() {
		t.Errorf("alice ratings: got %v, want [%s]", aliceView.Ratings, rating.ID.Hex())
	}

	g := view.Groups[0]
	if g.Owner != bob.ID.Hex() {
		t.Errorf("group owner: got %s, want %s", g.Owner, bob.ID.Hex())
	}
	if len(g.Members) != 1 || g.Members[0] != alice.ID.Hex() {
		t.Errorf("group members: got %v, want [%s]", g.Members, alice.ID.Hex())
	}
	if len(g.Requests) != 1 || g.Requests[0] != req.ID.Hex() {
		t.Errorf("group requests: got %v, want [%s]", g.Requests, req.ID.Hex())
	}

	m := view.Movies[0]
	if len(m.Ratings) != 1 || m.Ratings[0] != rating.ID.Hex() {
		t.Errorf("movie ratings: got %v, want [%s]", m.Ratings, rating.ID.Hex())
	}
}

func TestBuild_EmptyListsNotNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	realm := fx.CreateRealm(ctx, "empty")
	fx.CreateUser(ctx, realm.ID, "alice", "USER")

	view, err := realmview.New(db).Build(ctx, realm.ID)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	u := view.Users[0]
	if u.Groups == nil || u.Requests == nil || u.Ratings == nil {
		t.Error("id lists must be empty slices, not nil")
	}
}

func TestBuild_ScopedToRealm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	realmA := fx.CreateRealm(ctx, "a")
	realmB := fx.CreateRealm(ctx, "b")
	fx.CreateUser(ctx, realmA.ID, "alice", "USER")
	fx.CreateUser(ctx, realmB.ID, "bob", "USER")
	fx.CreateMovie(ctx, realmB.ID, "Elsewhere")

	view, err := realmview.New(db).Build(ctx, realmA.ID)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(view.Users) != 1 {
		t.Errorf("users: got %d, want 1", len(view.Users))
	}
	if len(view.Movies) != 0 {
		t.Errorf("movies: got %d, want 0", len(view.Movies))
	}
}
