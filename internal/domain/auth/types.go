package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"strings"
	"time"
)

// Sentinel errors shared by token codec implementations.
var (
	// ErrTokenCreation indicates a token could not be minted.
	ErrTokenCreation = errors.New("auth: token creation failed")
	// ErrTokenInvalid indicates a token failed verification: malformed,
	// expired, wrong signature, or wrong kind.
	ErrTokenInvalid = errors.New("auth: token invalid")
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and serialization.
// Valid values are defined as constants below.
type Role string

const (
	RoleUser     Role = "USER"
	RoleOwner    Role = "OWNER"
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// Valid reports whether the role is one of the supported values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleOwner, RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a role string and reports whether it is supported.
func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	if role.Valid() {
		return role, true
	}
	return "", false
}

// TokenKind distinguishes access tokens from refresh tokens.
// The two kinds are signed with independent secrets and must never
// validate against each other.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenClaims is the verified payload of an auth token. Subject is the
// user id; TokenID is the jti used for refresh revocation.
type TokenClaims struct {
	Subject   string
	TokenID   string
	Kind      TokenKind
	ExpiresAt time.Time
}

// TokenPair is the access/refresh pair minted on signup, signin, and refresh.
// Both tokens are always issued together; the cookie layer sets or clears
// them as a unit.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshTokenID   string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}
