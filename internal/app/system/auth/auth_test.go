package auth_test

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	userstore "github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/testutil"
)

func newAuthenticator(t *testing.T, masterKey string) (*auth.Authenticator, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	a := auth.New(userstore.New(db), auth.Config{MasterKey: masterKey}, zap.NewNop())
	return a, testutil.NewFixtures(t, db)
}

func TestLogin_ReturnsExistingToken(t *testing.T) {
	a, fix := newAuthenticator(t, "")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	u := fix.CreateUser(ctx, realm.ID, "alice", "USER")

	got, err := a.Login(ctx, "alice", "alice-pw", false)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if got.Token != u.Token {
		t.Errorf("token changed on repeat login: got %q, want %q", got.Token, u.Token)
	}
}

func TestLogin_RenewRotatesToken(t *testing.T) {
	a, fix := newAuthenticator(t, "")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	u := fix.CreateUser(ctx, realm.ID, "alice", "USER")

	got, err := a.Login(ctx, "alice", "alice-pw", true)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if got.Token == u.Token {
		t.Error("renew kept the old token")
	}
	if got.Token == "" {
		t.Error("renew issued an empty token")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	a, fix := newAuthenticator(t, "")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	fix.CreateUser(ctx, realm.ID, "alice", "USER")

	cases := []struct{ username, password string }{
		{"alice", "wrong"},
		{"nobody", "alice-pw"},
	}
	for _, c := range cases {
		if _, err := a.Login(ctx, c.username, c.password, false); !errors.Is(err, auth.ErrBadCredentials) {
			t.Errorf("Login(%q, %q) = %v, want ErrBadCredentials", c.username, c.password, err)
		}
	}
}

func TestLogin_MasterKeyMatchesAnyUser(t *testing.T) {
	a, fix := newAuthenticator(t, "skeleton")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	fix.CreateUser(ctx, realm.ID, "alice", "USER")

	if _, err := a.Login(ctx, "alice", "skeleton", false); err != nil {
		t.Errorf("master key login failed: %v", err)
	}
}

func TestLogin_EmptyMasterKeyDisablesBackdoor(t *testing.T) {
	a, fix := newAuthenticator(t, "")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	fix.CreateUser(ctx, realm.ID, "alice", "USER")

	// With no master key configured, the empty password must not match.
	if _, err := a.Login(ctx, "alice", "", false); !errors.Is(err, auth.ErrBadCredentials) {
		t.Errorf("empty password accepted: %v", err)
	}
}

func TestLogin_DisabledUserStillAuthenticates(t *testing.T) {
	a, fix := newAuthenticator(t, "")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	db := fix.DB()
	realm := fix.CreateRealm(ctx, "r")
	u := fix.CreateUser(ctx, realm.ID, "alice", "USER")

	disabled := false
	if err := userstore.New(db).Update(ctx, u.ID, userstore.Update{Enabled: &disabled}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if _, err := a.Login(ctx, "alice", "alice-pw", false); err != nil {
		t.Errorf("disabled user login failed: %v", err)
	}
}

func TestLogout_InvalidatesOldToken(t *testing.T) {
	a, fix := newAuthenticator(t, "")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	realm := fix.CreateRealm(ctx, "r")
	u := fix.CreateUser(ctx, realm.ID, "alice", "USER")
	old := u.Token

	if err := a.Logout(ctx, &u); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if u.Token == old {
		t.Error("logout kept the old token")
	}

	if _, err := a.Resolve(ctx, old); err == nil {
		t.Error("old token still resolves after logout")
	}
	got, err := a.Resolve(ctx, u.Token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("new token resolves to %s, want %s", got.ID.Hex(), u.ID.Hex())
	}
}

func TestIsMasterToken(t *testing.T) {
	a, _ := newAuthenticator(t, "skeleton")
	if !a.IsMasterToken("skeleton") {
		t.Error("master key not recognized as master token")
	}
	if a.IsMasterToken("other") {
		t.Error("arbitrary token accepted as master token")
	}

	b, _ := newAuthenticator(t, "")
	if b.IsMasterToken("") {
		t.Error("empty master key must disable the master token")
	}
}
