package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Netflix/go-env"
)

// Environment variables with defaults
type ServerEnvironment struct {

	// http server settings
	Environment           string        `env:"ENVIRONMENT,default=dev"`
	Host                  string        `env:"HOST,default=0.0.0.0"`
	Port                  int           `env:"PORT,default=8080"`
	LogLevel              string        `env:"LOG_LEVEL,default=debug"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=10s"`
	ReadTimeout           time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout          time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout           time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	MaxRequestSize        int64         `env:"MAX_REQUEST_SIZE,default=1048576"`
	RateLimitRPS          int32         `env:"RATE_LIMIT_RPS,default=100"`
	RateLimitBurst        int32         `env:"RATE_LIMIT_BURST,default=200"`
	MetricsEnabled        bool          `env:"METRICS_ENABLED,default=true"`

	// PublicBaseURL is used to build Location headers and _links (e.g. https://pim.example.com).
	// When empty the scheme and host of the incoming request are used.
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	// storage settings - STORAGE is either "postgres" or "memory"
	Storage             string        `env:"STORAGE,default=postgres"`
	DatabaseURL         string        `env:"DATABASE_URL"`
	AutoMigrate         bool          `env:"AUTO_MIGRATE,default=false"`
	DBMaxConnections    int32         `env:"DB_MAX_CONNECTIONS,default=4"`
	DBMinConnections    int32         `env:"DB_MIN_CONNECTIONS,default=0"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME,default=60m"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME,default=30m"`
	DBConnectTimeout    time.Duration `env:"DB_CONNECT_TIMEOUT,default=5s"`
	DatabasePingTimeout time.Duration `env:"DATABASE_PING_TIMEOUT,default=10s"`

	// reference data loaded into the in-memory store
	SeedLocales    []string `env:"SEED_LOCALES,default=en_US|fr_FR|de_DE,separator=|"`
	SeedAttributes []string `env:"SEED_ATTRIBUTES,default=sku|a_date|a_file,separator=|"`

	// bearer token authentication - disabled when both AUTH_JWKS_URL and AUTH_JWKS_FILE are empty.
	// AUTH_JWKS_FILE is a local public JWK set (see pimctl keygen), it is also served at /.well-known/jwks.json
	AuthJWKSURL            string        `env:"AUTH_JWKS_URL"`
	AuthJWKSFile           string        `env:"AUTH_JWKS_FILE"`
	AuthJWKCacheMinRefresh time.Duration `env:"AUTH_JWK_CACHE_MIN_REFRESH,default=10m"`
	AuthJWKCacheMaxRefresh time.Duration `env:"AUTH_JWK_CACHE_MAX_REFRESH,default=12h"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"prod":    true,
	"staging": true,
}

var validStorage = map[string]bool{
	"postgres": true,
	"memory":   true,
}

// NewServerConfig loads environment variables and returns a ServerEnvironment struct that contains the values
func NewServerConfig() (*ServerEnvironment, error) {
	var cfg ServerEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil

}

// validateConfig checks for required env variables
func validateConfig(cfg *ServerEnvironment) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}
	if cfg.MaxRequestSize < 1 {
		return fmt.Errorf("MAX_REQUEST_SIZE must be at least 1")
	}

	if !validStorage[cfg.Storage] {
		return fmt.Errorf("invalid STORAGE: %s (use postgres or memory)", cfg.Storage)
	}
	if cfg.Storage == "postgres" && cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when STORAGE=postgres")
	}

	// Validate database pool configuration
	if cfg.DBMaxConnections < 1 {
		return fmt.Errorf("DB_MAX_CONNECTIONS must be at least 1")
	}
	if cfg.DBMinConnections < 0 {
		return fmt.Errorf("DB_MIN_CONNECTIONS must be 0 or greater")
	}
	if cfg.DBMinConnections > cfg.DBMaxConnections {
		return fmt.Errorf("DB_MIN_CONNECTIONS (%d) cannot be greater than DB_MAX_CONNECTIONS (%d)",
			cfg.DBMinConnections, cfg.DBMaxConnections)
	}

	if cfg.PublicBaseURL != "" {
		u, err := url.Parse(cfg.PublicBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("PUBLIC_BASE_URL must be an absolute URL, got %q", cfg.PublicBaseURL)
		}
	}

	if cfg.AuthJWKSURL != "" && cfg.AuthJWKSFile != "" {
		return fmt.Errorf("AUTH_JWKS_URL and AUTH_JWKS_FILE cannot both be set")
	}
	if cfg.AuthJWKSURL != "" {
		if _, err := url.ParseRequestURI(cfg.AuthJWKSURL); err != nil {
			return fmt.Errorf("invalid AUTH_JWKS_URL: %w", err)
		}
		if cfg.AuthJWKCacheMinRefresh > cfg.AuthJWKCacheMaxRefresh {
			return fmt.Errorf("AUTH_JWK_CACHE_MIN_REFRESH cannot be greater than AUTH_JWK_CACHE_MAX_REFRESH")
		}
	}

	return nil
}

// AuthEnabled reports whether bearer token authentication is configured.
func (cfg *ServerEnvironment) AuthEnabled() bool {
	return cfg.AuthJWKSURL != "" || cfg.AuthJWKSFile != ""
}
