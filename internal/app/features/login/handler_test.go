package login_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/reelhub/reelhub/internal/app/features/login"
	userstore "github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/domain/models"
	"github.com/reelhub/reelhub/internal/testutil"
)

func newHandler(t *testing.T) (*login.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	authn := auth.New(userstore.New(db), auth.Config{}, logger)
	return login.NewHandler(authn, apierr.NewLogger(logger), logger), testutil.NewFixtures(t, db)
}

func TestHandleLogin_ReturnsToken(t *testing.T) {
	h, fix := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	u := fix.CreateUser(ctx, realm.ID, "alice", "USER")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/login",
		map[string]string{"username": "alice", "password": "alice-pw"})
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	var view models.TokenView
	rec.DecodeJSON(t, &view)
	if view.Token != u.Token {
		t.Errorf("token = %q, want the account's existing %q", view.Token, u.Token)
	}
}

func TestHandleLogin_RenewIssuesFreshToken(t *testing.T) {
	h, fix := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	u := fix.CreateUser(ctx, realm.ID, "alice", "USER")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/login",
		map[string]string{"username": "alice", "password": "alice-pw", "renew": "true"})
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	var view models.TokenView
	rec.DecodeJSON(t, &view)
	if view.Token == u.Token || view.Token == "" {
		t.Errorf("renew returned %q, want a fresh token", view.Token)
	}
}

func TestHandleLogin_MissingFields(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/login",
		map[string]string{"username": "alice"})
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleLogin_BadPassword(t *testing.T) {
	h, fix := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	fix.CreateUser(ctx, realm.ID, "alice", "USER")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/login",
		map[string]string{"username": "alice", "password": "wrong"})
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusForbidden)
	rec.AssertContains(t, "bad credentials")
}

func TestHandleLogin_BadRenewValue(t *testing.T) {
	h, fix := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	u := fix.CreateUser(ctx, realm.ID, "alice", "USER")

	// Only the literal "true" renews; anything else is malformed rather
	// than a quiet no-renew.
	req := testutil.NewJSONRequest(t, http.MethodPost, "/login",
		map[string]string{"username": "alice", "password": "alice-pw", "renew": "yes"})
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)

	got, err := userstore.New(fix.DB()).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Token != u.Token {
		t.Error("token rotated by a rejected login")
	}
}
