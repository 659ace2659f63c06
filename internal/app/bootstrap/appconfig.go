// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, and request body size limits.
// AppConfig is where everything specific to this application lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// MasterKey authenticates as any user when presented as a password
	// and authorizes database restore when presented as a path token.
	// Empty disables both. Must be strong in production.
	MasterKey string

	// TokenBytes is the entropy of generated access tokens, in bytes
	// before base64 encoding. Zero means the auth package default.
	TokenBytes int

	// Bootstrap account created on first startup, when the user
	// collection is empty.
	RootUsername   string
	RootPassword   string
	BootstrapRealm string // name of the realm the bootstrap account lives in
}
