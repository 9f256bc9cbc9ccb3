package config

import "time"

// AuthConfig groups token signing and cookie configuration.
//
// Access and refresh tokens are signed with independent secrets so a token
// minted for one purpose can never validate for the other. Cookie values are
// additionally signed with CookieSecret so client-side tampering is detected
// before the token itself is ever parsed.
type AuthConfig struct {
	// AccessSecret signs short-lived access tokens.
	AccessSecret string `env:"ACCESS_TOKEN_SECRET,required"`

	// RefreshSecret signs long-lived refresh tokens.
	RefreshSecret string `env:"REFRESH_TOKEN_SECRET,required"`

	// CookieSecret signs the cookie envelope around both tokens.
	CookieSecret string `env:"COOKIE_SECRET,required"`

	// AccessTTL is the access token validity window.
	AccessTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	// RefreshTTL is the refresh token validity window.
	RefreshTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"8760h"`

	// CookieDomain is the cookie Domain attribute used outside development.
	// In development the bare request host is used instead.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.AccessTTL <= 0 {
		a.AccessTTL = 24 * time.Hour
	}
	if a.RefreshTTL <= 0 {
		a.RefreshTTL = 365 * 24 * time.Hour
	}
	// Refresh tokens must outlive access tokens for rotation to make sense.
	if a.RefreshTTL < a.AccessTTL {
		a.RefreshTTL = a.AccessTTL
	}
}
