// Package jwtcodec signs and verifies the HS256 JWTs carried in auth cookies.
// Access and refresh tokens use independent secrets so one kind can never be
// replayed as the other.
package jwtcodec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jobfinder/jobfinder-api/config"
	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
)

// Codec implements ports.TokenCodec using golang-jwt.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// Option customizes a Codec.
type Option func(*Codec)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// New builds a Codec from auth config.
func New(cfg config.AuthConfig, opts ...Option) (*Codec, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("jwtcodec: access and refresh secrets are required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("jwtcodec: access and refresh secrets must differ")
	}
	c := &Codec{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Codec) params(kind domainauth.TokenKind) (secret []byte, ttl time.Duration, err error) {
	switch kind {
	case domainauth.TokenKindAccess:
		return c.accessSecret, c.accessTTL, nil
	case domainauth.TokenKindRefresh:
		return c.refreshSecret, c.refreshTTL, nil
	default:
		return nil, 0, fmt.Errorf("jwtcodec: unknown token kind %q", kind)
	}
}

// Sign mints a token of the given kind for the subject.
func (c *Codec) Sign(kind domainauth.TokenKind, subject string) (string, string, time.Time, error) {
	secret, ttl, err := c.params(kind)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("%w: %w", domainauth.ErrTokenCreation, err)
	}
	if subject == "" {
		return "", "", time.Time{}, fmt.Errorf("%w: empty subject", domainauth.ErrTokenCreation)
	}

	now := c.now()
	expiresAt := now.Add(ttl)
	tokenID := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        tokenID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("%w: %w", domainauth.ErrTokenCreation, err)
	}
	return signed, tokenID, expiresAt, nil
}

// Verify parses and validates a token of the given kind. Any failure —
// malformed input, wrong signature, expiry, cross-kind replay — surfaces as
// ErrTokenInvalid so callers cannot distinguish why a token was rejected.
func (c *Codec) Verify(kind domainauth.TokenKind, token string) (domainauth.TokenClaims, error) {
	secret, _, err := c.params(kind)
	if err != nil {
		return domainauth.TokenClaims{}, fmt.Errorf("%w: %w", domainauth.ErrTokenInvalid, err)
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return domainauth.TokenClaims{}, fmt.Errorf("%w: %w", domainauth.ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return domainauth.TokenClaims{}, domainauth.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return domainauth.TokenClaims{}, fmt.Errorf("%w: missing subject", domainauth.ErrTokenInvalid)
	}

	return domainauth.TokenClaims{
		Subject:   claims.Subject,
		TokenID:   claims.ID,
		Kind:      kind,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
