// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/reelhub/reelhub/internal/app/store/realms"
	"github.com/reelhub/reelhub/internal/app/store/users"
	"github.com/reelhub/reelhub/internal/app/system/auth"
	"github.com/reelhub/reelhub/internal/app/system/authz"
	"github.com/reelhub/reelhub/internal/app/system/credentials"
	"github.com/reelhub/reelhub/internal/domain/models"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
//
// When the user collection is empty it seeds a bootstrap realm and a
// ROOT account so the service is administrable from first boot. The
// seed only runs once; an existing deployment is never touched.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	users := userstore.New(deps.ReelHubMongoDatabase)

	n, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}
	if appCfg.RootPassword == "" {
		logger.Warn("user collection is empty and root_password is unset, skipping bootstrap")
		return nil
	}

	realm, err := realmstore.New(deps.ReelHubMongoDatabase).Create(ctx, appCfg.BootstrapRealm)
	if err != nil {
		return fmt.Errorf("create bootstrap realm: %w", err)
	}

	digest, err := credentials.Hash(appCfg.RootPassword)
	if err != nil {
		return err
	}
	token, err := auth.NewToken(appCfg.TokenBytes)
	if err != nil {
		return err
	}
	root, err := users.Create(ctx, models.User{
		RealmID:  realm.ID,
		Username: appCfg.RootUsername,
		Password: digest,
		Token:    token,
		Enabled:  true,
		Roles:    authz.JoinRoles(authz.RoleRoot, authz.RoleAdmin, authz.RoleUser),
	})
	if err != nil {
		return fmt.Errorf("create bootstrap user: %w", err)
	}

	logger.Info("bootstrapped first realm and ROOT account",
		zap.String("realm", realm.Name),
		zap.String("username", root.Username))
	return nil
}
