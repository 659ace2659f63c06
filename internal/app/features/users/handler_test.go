package users_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/reelhub/reelhub/internal/app/features/users"
	memberstore "github.com/reelhub/reelhub/internal/app/store/members"
	userstore "github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/domain/models"
	"github.com/reelhub/reelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func newHandler(t *testing.T) (*users.Handler, *testutil.Fixtures, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	authn := auth.New(userstore.New(db), auth.Config{}, logger)
	h := users.NewHandler(db.Client(), db, authn, apierr.NewLogger(logger), logger)
	return h, testutil.NewFixtures(t, db), db
}

func TestHandleAdd_RequiresAdmin(t *testing.T) {
	h, fix, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	plain := fix.CreateUser(ctx, realm.ID, "plain", "USER")

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/adduser", &plain,
		map[string]string{"username": "new", "password": "pw"})
	rec := testutil.NewRecorder()
	h.HandleAdd(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleAdd_CreatesEnabledUserInAdminRealm(t *testing.T) {
	h, fix, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	admin := fix.CreateAdmin(ctx, realm.ID, "admin")

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/adduser", &admin,
		map[string]string{"username": "fresh", "password": "pw"})
	rec := testutil.NewRecorder()
	h.HandleAdd(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	u, err := userstore.New(db).GetByUsername(ctx, "fresh")
	if err != nil {
		t.Fatalf("created user missing: %v", err)
	}
	if u.RealmID != realm.ID {
		t.Errorf("user in realm %s, want %s", u.RealmID.Hex(), realm.ID.Hex())
	}
	if u.Roles != "USER" {
		t.Errorf("Roles = %q, want USER", u.Roles)
	}
	if !u.Enabled || u.Token == "" {
		t.Error("new user must start enabled with a token")
	}
}

func TestHandleAdd_JoinsListedGroups(t *testing.T) {
	h, fix, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	admin := fix.CreateAdmin(ctx, realm.ID, "admin")
	g1 := fix.CreateGroup(ctx, realm.ID, "g1", admin.ID)
	g2 := fix.CreateGroup(ctx, realm.ID, "g2", admin.ID)

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/adduser", &admin,
		map[string]any{"username": "fresh", "password": "pw",
			"groups": []string{g1.ID.Hex(), g2.ID.Hex()}})
	rec := testutil.NewRecorder()
	h.HandleAdd(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	u, err := userstore.New(db).GetByUsername(ctx, "fresh")
	if err != nil {
		t.Fatalf("created user missing: %v", err)
	}
	members := memberstore.New(db)
	ok, err := members.Exists(ctx, g1.ID, u.ID)
	if err != nil || !ok {
		t.Errorf("membership in g1 missing (ok=%v err=%v)", ok, err)
	}
	ok, err = members.Exists(ctx, g2.ID, u.ID)
	if err != nil || !ok {
		t.Errorf("membership in g2 missing (ok=%v err=%v)", ok, err)
	}
}

func TestHandleSet_DisableUser(t *testing.T) {
	h, fix, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	admin := fix.CreateAdmin(ctx, realm.ID, "admin")
	target := fix.CreateUser(ctx, realm.ID, "target", "USER")

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/setuser", &admin,
		map[string]any{"id": target.ID.Hex(), "enabled": false})
	rec := testutil.NewRecorder()
	h.HandleSet(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	got, err := userstore.New(db).GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Enabled {
		t.Error("user still enabled after setuser")
	}
}

func TestHandleSet_EmptyUsernameRefused(t *testing.T) {
	h, fix, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	admin := fix.CreateAdmin(ctx, realm.ID, "admin")
	target := fix.CreateUser(ctx, realm.ID, "target", "USER")

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/setuser", &admin,
		map[string]any{"id": target.ID.Hex(), "username": ""})
	rec := testutil.NewRecorder()
	h.HandleSet(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleSet_CrossRealmRefused(t *testing.T) {
	h, fix, _ := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realmA := fix.CreateRealm(ctx, "a")
	realmB := fix.CreateRealm(ctx, "b")
	admin := fix.CreateAdmin(ctx, realmA.ID, "admin")
	outsider := fix.CreateUser(ctx, realmB.ID, "outsider", "USER")

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/setuser", &admin,
		map[string]any{"id": outsider.ID.Hex(), "enabled": false})
	rec := testutil.NewRecorder()
	h.HandleSet(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleRemove_CascadesUserFootprint(t *testing.T) {
	h, fix, db := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	admin := fix.CreateAdmin(ctx, realm.ID, "admin")
	target := fix.CreateUser(ctx, realm.ID, "target", "USER")
	bystander := fix.CreateUser(ctx, realm.ID, "bystander", "USER")

	// target owns a group with another member in it
	owned := fix.CreateGroup(ctx, realm.ID, "owned", target.ID)
	fix.CreateMembership(ctx, owned, bystander.ID)

	// target is a member of someone else's group
	other := fix.CreateGroup(ctx, realm.ID, "other", admin.ID)
	fix.CreateMembership(ctx, other, target.ID)

	movie := fix.CreateMovie(ctx, realm.ID, "Seven Samurai")
	fix.CreateRating(ctx, realm.ID, target.ID, movie.ID, 5, "")
	fix.CreateRequest(ctx, realm.ID, target.ID, other.ID, models.AwaitingGroup)

	req := testutil.NewAuthenticatedRequest(t, http.MethodPost, "/rmuser", &admin,
		map[string]string{"id": target.ID.Hex()})
	rec := testutil.NewRecorder()
	h.HandleRemove(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	if _, err := userstore.New(db).GetByID(ctx, target.ID); err == nil {
		t.Error("user document survived removal")
	}
	checks := []struct {
		coll   string
		filter bson.M
	}{
		{"groups", bson.M{"owner_id": target.ID}},
		{"group_members", bson.M{"user_id": target.ID}},
		{"group_members", bson.M{"group_id": owned.ID}},
		{"ratings", bson.M{"user_id": target.ID}},
		{"requests", bson.M{"user_id": target.ID}},
	}
	for _, c := range checks {
		n, err := db.Collection(c.coll).CountDocuments(ctx, c.filter)
		if err != nil {
			t.Fatalf("count %s: %v", c.coll, err)
		}
		if n != 0 {
			t.Errorf("%d documents left in %s for %v", n, c.coll, c.filter)
		}
	}

	// The bystander and the admin's group survive.
	if _, err := userstore.New(db).GetByID(ctx, bystander.ID); err != nil {
		t.Errorf("bystander caught in cascade: %v", err)
	}
	n, err := db.Collection("groups").CountDocuments(ctx, bson.M{"_id": other.ID})
	if err != nil || n != 1 {
		t.Errorf("unrelated group missing after cascade (n=%d err=%v)", n, err)
	}
}
