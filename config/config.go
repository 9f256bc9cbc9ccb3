package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Token and cookie configuration
//   - database.go: Database and Redis configuration
//   - http.go: HTTP server configuration
type AppConfig struct {
	// IsDev controls development mode behavior (cookie Secure/Domain attributes, etc.)
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Authentication configuration
	Auth AuthConfig

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Uploads configuration
	Uploads UploadsConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.HTTP.Sanitize()
	c.Uploads.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// UploadsConfig controls where resume and company logo files are stored.
type UploadsConfig struct {
	// Dir is the root directory for uploaded files.
	Dir string `env:"UPLOADS_DIR" envDefault:"uploads"`

	// MaxSizeBytes caps the accepted upload size.
	MaxSizeBytes int64 `env:"UPLOADS_MAX_SIZE_BYTES" envDefault:"5242880"`
}

// Sanitize applies guardrails to uploads configuration values.
func (u *UploadsConfig) Sanitize() {
	if strings.TrimSpace(u.Dir) == "" {
		u.Dir = "uploads"
	}
	if u.MaxSizeBytes <= 0 {
		u.MaxSizeBytes = 5 << 20
	}
}
