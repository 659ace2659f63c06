// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	backupfeature "github.com/reelhub/reelhub/internal/app/features/backup"
	groupsfeature "github.com/reelhub/reelhub/internal/app/features/groups"
	healthfeature "github.com/reelhub/reelhub/internal/app/features/health"
	listviewfeature "github.com/reelhub/reelhub/internal/app/features/listview"
	loginfeature "github.com/reelhub/reelhub/internal/app/features/login"
	logoutfeature "github.com/reelhub/reelhub/internal/app/features/logout"
	moviesfeature "github.com/reelhub/reelhub/internal/app/features/movies"
	ratingsfeature "github.com/reelhub/reelhub/internal/app/features/ratings"
	realmsfeature "github.com/reelhub/reelhub/internal/app/features/realms"
	requestsfeature "github.com/reelhub/reelhub/internal/app/features/requests"
	usersfeature "github.com/reelhub/reelhub/internal/app/features/users"
	userstore "github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed.
//
// The API surface hangs off /api/{token}: the path token identifies the
// caller on every request, so there is no session state. Login is the
// one call outside the token group, and restore sits outside it too
// because its token is the master key rather than a user token.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	client := deps.ReelHubMongoClient
	db := deps.ReelHubMongoDatabase

	errLog := apierr.NewLogger(logger)
	authn := auth.New(userstore.New(db), auth.Config{
		MasterKey:  appCfg.MasterKey,
		TokenBytes: appCfg.TokenBytes,
	}, logger)

	r := chi.NewRouter()
	r.Use(requestLogger(logger))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(client, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	backupHandler := backupfeature.NewHandler(db, authn, errLog, logger)

	r.Route("/api", func(api chi.Router) {
		loginHandler := loginfeature.NewHandler(authn, errLog, logger)
		api.Mount("/login", loginfeature.Routes(loginHandler))

		api.Route("/{token}", func(tok chi.Router) {
			// Restore authenticates with the master key instead of a
			// user token, so it must sit outside the middleware group.
			tok.Post("/restore", backupHandler.HandleRestore)

			tok.Group(func(authed chi.Router) {
				authed.Use(auth.Middleware(authn, errLog))

				logoutfeature.Routes(authed, logoutfeature.NewHandler(authn, errLog, logger))
				realmsfeature.Routes(authed, realmsfeature.NewHandler(client, db, authn, errLog, logger))
				usersfeature.Routes(authed, usersfeature.NewHandler(client, db, authn, errLog, logger))
				groupsfeature.Routes(authed, groupsfeature.NewHandler(client, db, errLog, logger))
				moviesfeature.Routes(authed, moviesfeature.NewHandler(client, db, errLog, logger))
				ratingsfeature.Routes(authed, ratingsfeature.NewHandler(client, db, errLog, logger))
				requestsfeature.Routes(authed, requestsfeature.NewHandler(client, db, errLog, logger))
				listviewfeature.Routes(authed, listviewfeature.NewHandler(db, errLog, logger))
				backupfeature.Routes(authed, backupHandler)
			})
		})
	})

	return r, nil
}

// requestLogger tags each request with a correlation id and logs its
// outcome at debug level.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := uuid.NewString()
			w.Header().Set("X-Request-ID", id)
			next.ServeHTTP(w, r)
			logger.Debug("request served",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("elapsed", time.Since(start)))
		})
	}
}
