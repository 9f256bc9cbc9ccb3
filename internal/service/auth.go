package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jobfinder/jobfinder-api/internal/core"
	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
	"github.com/jobfinder/jobfinder-api/internal/ports"
)

// Credential failures on signin deliberately share one message so callers
// cannot probe which accounts exist.
const msgInvalidCredentials = "Invalid fullName or password"

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users   core.UserRepository
	Codec   ports.TokenCodec
	Revoked ports.RevokedTokenStore
	Hasher  ports.PasswordHasher
}

// AuthService orchestrates signup, signin, token refresh, and logout.
type AuthService struct {
	users   core.UserRepository
	codec   ports.TokenCodec
	revoked ports.RevokedTokenStore
	hasher  ports.PasswordHasher
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		users:   opts.Users,
		codec:   opts.Codec,
		revoked: opts.Revoked,
		hasher:  opts.Hasher,
	}
}

// AuthResult pairs the authenticated user with freshly minted tokens.
type AuthResult struct {
	User   *model.User
	Tokens domainauth.TokenPair
}

// Signup registers a new account and signs it in.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to hash password")
	}

	user, err := s.users.Create(ctx, core.CreateUserParams{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hash,
		Role:     string(req.NormalizedRole()),
	})
	if err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Signin authenticates by full name and password. Unknown accounts and wrong
// passwords produce the same validation error.
func (s *AuthService) Signin(ctx context.Context, req model.SigninRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	user, err := s.users.GetByFullName(ctx, req.FullName)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validation(msgInvalidCredentials)
		}
		return nil, err
	}

	if compareErr := s.hasher.Compare(user.Password, req.Password); compareErr != nil {
		return nil, apperrors.Validation(msgInvalidCredentials)
	}

	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Refresh rotates a refresh token: the presented token is verified, its jti
// is atomically consumed on the denylist, and a fresh pair is minted. A
// refresh token can therefore be used exactly once, even under concurrent
// presentations.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.codec.Verify(domainauth.TokenKindRefresh, refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("Token payload is invalid.")
	}

	// Claim the jti before minting anything: a check-then-revoke sequence
	// would let two concurrent presentations both rotate.
	consumed, err := s.revoked.Consume(ctx, claims.TokenID, time.Until(claims.ExpiresAt))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to consume refresh token")
	}
	if !consumed {
		return nil, apperrors.Unauthorized("Token payload is invalid.")
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized("Account not found.")
		}
		return nil, err
	}

	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Logout revokes the presented refresh token. An unreadable token is not an
// error; the cookies get cleared either way.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.codec.Verify(domainauth.TokenKindRefresh, refreshToken)
	if err != nil {
		return nil
	}
	if revokeErr := s.revoked.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt)); revokeErr != nil {
		return apperrors.Wrap(revokeErr, apperrors.ErrCodeInternal, "failed to revoke refresh token")
	}
	return nil
}

// ResolveAccessToken verifies an access token and loads its user, stripped
// of the password hash; the request context never carries credentials. Every
// failure maps to Unauthorized so middleware can answer 401 uniformly.
func (s *AuthService) ResolveAccessToken(ctx context.Context, accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, apperrors.Unauthorized("Please log in to your account.")
	}

	claims, err := s.codec.Verify(domainauth.TokenKindAccess, accessToken)
	if err != nil {
		return nil, apperrors.Unauthorized("Token payload is invalid.")
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized("Token payload is invalid.")
		}
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *AuthService) issueTokens(userID string) (domainauth.TokenPair, error) {
	access, _, accessExp, err := s.codec.Sign(domainauth.TokenKindAccess, userID)
	if err != nil {
		return domainauth.TokenPair{}, s.mapSignErr(err)
	}
	refresh, refreshID, refreshExp, err := s.codec.Sign(domainauth.TokenKindRefresh, userID)
	if err != nil {
		return domainauth.TokenPair{}, s.mapSignErr(err)
	}
	return domainauth.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshTokenID:   refreshID,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *AuthService) mapSignErr(err error) error {
	if errors.Is(err, domainauth.ErrTokenCreation) {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to create token")
	}
	return fmt.Errorf("sign token: %w", err)
}
