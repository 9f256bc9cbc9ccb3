package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
)

// TokenCodec signs and verifies the JWTs carried in auth cookies. Access and
// refresh tokens use separate secrets; a token signed for one kind never
// verifies as the other.
type TokenCodec interface {
	// Sign mints a token of the given kind for the subject. It returns the
	// compact token, its unique id (jti) and its expiry.
	Sign(kind domainauth.TokenKind, subject string) (token, tokenID string, expiresAt time.Time, err error)

	// Verify parses and validates a token of the given kind and returns its
	// claims. Expired, malformed, or cross-kind tokens fail with
	// ErrTokenInvalid.
	Verify(kind domainauth.TokenKind, token string) (domainauth.TokenClaims, error)
}

// RevokedTokenStore remembers refresh token ids that must no longer be
// accepted (logout, rotation). Entries expire together with the token they
// block.
type RevokedTokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// Consume atomically claims a token id for rotation. It reports false
	// when the id was already claimed or revoked; concurrent callers agree
	// on a single winner.
	Consume(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
}

// PasswordHasher hashes and compares user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
