// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for ReelHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, master_key, etc.
//   - Environment variables: REELHUB_MONGO_URI, REELHUB_MASTER_KEY, etc.
//   - Command-line flags: --mongo_uri, --master_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "reelhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "master_key", Default: "", Desc: "Master credential: logs in as any user and authorizes restore (empty disables)"},
	{Name: "token_bytes", Default: 16, Desc: "Entropy of generated access tokens, in bytes"},

	// Bootstrap account, used only when the user collection is empty.
	{Name: "root_username", Default: "root", Desc: "Username of the bootstrap ROOT account"},
	{Name: "root_password", Default: "", Desc: "Password of the bootstrap ROOT account (empty skips bootstrap)"},
	{Name: "bootstrap_realm", Default: "default", Desc: "Name of the realm created for the bootstrap account"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, REELHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "REELHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		MasterKey:  appValues.String("master_key"),
		TokenBytes: appValues.Int("token_bytes"),

		RootUsername:   appValues.String("root_username"),
		RootPassword:   appValues.String("root_password"),
		BootstrapRealm: appValues.String("bootstrap_realm"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// ReelHub validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.TokenBytes < 0 {
		return fmt.Errorf("token_bytes must not be negative, got %d", appCfg.TokenBytes)
	}

	if coreCfg.Env == "prod" && appCfg.MasterKey != "" && len(appCfg.MasterKey) < 16 {
		return fmt.Errorf("master_key too short for production use")
	}

	return nil
}
