package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/timeouts"
	"github.com/reelhub/reelhub/internal/domain/models"
)

type ctxKey int

const userKey ctxKey = 0

// Middleware resolves the {token} path parameter to a user and stores it
// in the request context. Requests with an unknown token are rejected
// before any handler runs.
func Middleware(a *Authenticator, errlog *apierr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := chi.URLParam(r, "token")

			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			u, err := a.Resolve(ctx, token)
			cancel()
			if err != nil {
				errlog.Write(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// WithUser returns a context carrying the acting user.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// CurrentUser returns the acting user stored by Middleware, or nil when
// the request carried no resolved token.
func CurrentUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(userKey).(*models.User)
	return u
}

// WithTestUser injects a user into a request for handler tests,
// bypassing token resolution.
func WithTestUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(WithUser(r.Context(), u))
}
