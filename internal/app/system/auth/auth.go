// Package auth issues and resolves the session tokens that carry every
// API call. A user holds at most one token at a time; the token rides as
// a URL path segment, and logging out rotates it so old URLs die.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/credentials"
	"github.com/reelhub/reelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Authenticator validates credentials and resolves tokens to users.
type Authenticator struct {
	users      *userstore.Store
	masterKey  string
	tokenBytes int
	log        *zap.Logger
}

// Config carries the authenticator's settings.
type Config struct {
	// MasterKey authenticates as any user when presented in place of a
	// password, and authorizes database restore when presented in place
	// of a token. Empty disables both.
	MasterKey string

	// TokenBytes is the entropy of generated tokens. Zero means
	// DefaultTokenBytes.
	TokenBytes int
}

func New(users *userstore.Store, cfg Config, log *zap.Logger) *Authenticator {
	return &Authenticator{
		users:      users,
		masterKey:  cfg.MasterKey,
		tokenBytes: cfg.TokenBytes,
		log:        log,
	}
}

// ErrBadCredentials is returned for unknown usernames and wrong
// passwords alike, so callers cannot probe which usernames exist.
var ErrBadCredentials = apierr.New(apierr.Authorization, "bad credentials")

// Login checks a username/password pair and returns the user with a
// valid token. A token is only generated when the user has none or the
// caller asks for renewal; otherwise the existing token is returned, so
// concurrent clients sharing an account keep one session.
//
// The master key matches any user's password. Disabled users may still
// log in; the enabled flag gates nothing at this layer.
func (a *Authenticator) Login(ctx context.Context, username, password string, renew bool) (*models.User, error) {
	u, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if !a.isMasterKey(password) && !credentials.Verify(password, u.Password) {
		return nil, ErrBadCredentials
	}

	if u.Token == "" || renew {
		token, err := NewToken(a.tokenBytes)
		if err != nil {
			return nil, err
		}
		if err := a.users.SetToken(ctx, u.ID, token); err != nil {
			return nil, err
		}
		u.Token = token
		a.log.Info("session token issued",
			zap.String("user_id", u.ID.Hex()),
			zap.Bool("renewed", renew))
	}

	return u, nil
}

// MintToken generates a token with this authenticator's configured
// entropy, for callers that create accounts outside the login flow.
func (a *Authenticator) MintToken() (string, error) {
	return NewToken(a.tokenBytes)
}

// Logout rotates the user's token, invalidating every URL minted with
// the old one. The user stays able to log back in.
func (a *Authenticator) Logout(ctx context.Context, u *models.User) error {
	token, err := NewToken(a.tokenBytes)
	if err != nil {
		return err
	}
	if err := a.users.SetToken(ctx, u.ID, token); err != nil {
		return err
	}
	u.Token = token
	a.log.Info("session token rotated", zap.String("user_id", u.ID.Hex()))
	return nil
}

// Resolve maps a path token to the user holding it.
func (a *Authenticator) Resolve(ctx context.Context, token string) (*models.User, error) {
	u, err := a.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apierr.New(apierr.Authorization, "invalid token")
		}
		return nil, err
	}
	return u, nil
}

// IsMasterToken reports whether the presented path token is the master
// key. Only the restore endpoint accepts it.
func (a *Authenticator) IsMasterToken(token string) bool {
	return a.isMasterKey(token)
}

func (a *Authenticator) isMasterKey(s string) bool {
	if a.masterKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s), []byte(a.masterKey)) == 1
}
