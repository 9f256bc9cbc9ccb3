package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobfinder/jobfinder-api/config"
	"github.com/jobfinder/jobfinder-api/internal/adapters/jwtcodec"
	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
	mocks "github.com/jobfinder/jobfinder-api/internal/mocks/auth"
)

type authFixture struct {
	svc     *AuthService
	users   *mocks.MemoryUserRepo
	revoked *mocks.MemoryRevokedTokenStore
	codec   *jwtcodec.Codec
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	codec, err := jwtcodec.New(config.AuthConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     24 * time.Hour,
		RefreshTTL:    365 * 24 * time.Hour,
	})
	require.NoError(t, err)

	users := mocks.NewMemoryUserRepo()
	revoked := mocks.NewMemoryRevokedTokenStore()
	svc := NewAuthService(AuthServiceOptions{
		Users:   users,
		Codec:   codec,
		Revoked: revoked,
		Hasher:  mocks.PlainHasher{},
	})
	return &authFixture{svc: svc, users: users, revoked: revoked, codec: codec}
}

func validSignup() model.SignupRequest {
	return model.SignupRequest{
		FullName: "jane doe",
		Email:    "jane@example.com",
		Password: "long enough",
		Role:     "USER",
	}
}

func TestAuthService_Signup(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	res, err := f.svc.Signup(ctx, validSignup())
	require.NoError(t, err)
	assert.NotEmpty(t, res.User.ID)
	assert.Equal(t, domainauth.RoleUser, res.User.Role)
	assert.False(t, res.User.IsActive, "accounts start inactive until profile completion")
	assert.NotEmpty(t, res.Tokens.AccessToken)
	assert.NotEmpty(t, res.Tokens.RefreshToken)

	// The subject claim must be the user id, never the name.
	claims, err := f.codec.Verify(domainauth.TokenKindAccess, res.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.Subject)

	t.Run("duplicate name conflicts", func(t *testing.T) {
		req := validSignup()
		req.Email = "other@example.com"
		_, err := f.svc.Signup(ctx, req)
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("invalid request", func(t *testing.T) {
		req := validSignup()
		req.Password = "short"
		_, err := f.svc.Signup(ctx, req)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestAuthService_Signin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		res, err := f.svc.Signin(ctx, model.SigninRequest{FullName: "jane doe", Password: "long enough"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Tokens.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Signin(ctx, model.SigninRequest{FullName: "jane doe", Password: "nope nope"})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, msgInvalidCredentials, err.Error())
	})

	t.Run("unknown account shares the same error", func(t *testing.T) {
		_, err := f.svc.Signin(ctx, model.SigninRequest{FullName: "nobody", Password: "whatever"})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, msgInvalidCredentials, err.Error())
	})
}

func TestAuthService_Refresh_Rotation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	signedUp, err := f.svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	rotated, err := f.svc.Refresh(ctx, signedUp.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, signedUp.Tokens.RefreshTokenID, rotated.Tokens.RefreshTokenID)

	// The consumed token is now revoked: replay fails.
	_, err = f.svc.Refresh(ctx, signedUp.Tokens.RefreshToken)
	assert.True(t, apperrors.IsUnauthorized(err))

	// The fresh one still works.
	_, err = f.svc.Refresh(ctx, rotated.Tokens.RefreshToken)
	assert.NoError(t, err)
}

// rendezvousRevokedStore holds every Consume call at a barrier until all
// expected callers have arrived, forcing the overlap a real Redis round-trip
// permits before any claim lands.
type rendezvousRevokedStore struct {
	*mocks.MemoryRevokedTokenStore
	gate sync.WaitGroup
}

func (s *rendezvousRevokedStore) Consume(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	s.gate.Done()
	s.gate.Wait()
	return s.MemoryRevokedTokenStore.Consume(ctx, tokenID, ttl)
}

func TestAuthService_Refresh_ConcurrentSingleUse(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	signedUp, err := f.svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	store := &rendezvousRevokedStore{MemoryRevokedTokenStore: f.revoked}
	store.gate.Add(2)
	svc := NewAuthService(AuthServiceOptions{
		Users:   f.users,
		Codec:   f.codec,
		Revoked: store,
		Hasher:  mocks.PlainHasher{},
	})

	errs := make(chan error, 2)
	for range 2 {
		go func() {
			_, refreshErr := svc.Refresh(ctx, signedUp.Tokens.RefreshToken)
			errs <- refreshErr
		}()
	}

	var won, lost int
	for range 2 {
		if refreshErr := <-errs; refreshErr == nil {
			won++
		} else {
			assert.True(t, apperrors.IsUnauthorized(refreshErr))
			lost++
		}
	}
	assert.Equal(t, 1, won, "exactly one concurrent rotation may win")
	assert.Equal(t, 1, lost)
}

func TestAuthService_Refresh_Failures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	t.Run("garbage token", func(t *testing.T) {
		_, err := f.svc.Refresh(ctx, "not-a-token")
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		res, err := f.svc.Signup(ctx, validSignup())
		require.NoError(t, err)
		_, err = f.svc.Refresh(ctx, res.Tokens.AccessToken)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("deleted account", func(t *testing.T) {
		req := validSignup()
		req.FullName = "gone soon"
		req.Email = "gone@example.com"
		res, err := f.svc.Signup(ctx, req)
		require.NoError(t, err)

		f.users.Delete(res.User.ID)
		_, err = f.svc.Refresh(ctx, res.Tokens.RefreshToken)
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
		assert.Equal(t, "Account not found.", err.Error())
	})
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	res, err := f.svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, res.Tokens.RefreshToken))

	_, err = f.svc.Refresh(ctx, res.Tokens.RefreshToken)
	assert.True(t, apperrors.IsUnauthorized(err), "logged-out refresh token must be dead")

	t.Run("empty and garbage tokens are fine", func(t *testing.T) {
		assert.NoError(t, f.svc.Logout(ctx, ""))
		assert.NoError(t, f.svc.Logout(ctx, "garbage"))
	})
}

func TestAuthService_ResolveAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	res, err := f.svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		user, err := f.svc.ResolveAccessToken(ctx, res.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, res.User.ID, user.ID)
		assert.Empty(t, user.Password, "resolved user must not carry the password hash")
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := f.svc.ResolveAccessToken(ctx, "")
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
		assert.Equal(t, "Please log in to your account.", err.Error())
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := f.svc.ResolveAccessToken(ctx, "bogus")
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
		assert.Equal(t, "Token payload is invalid.", err.Error())
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		_, err := f.svc.ResolveAccessToken(ctx, res.Tokens.RefreshToken)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("deleted account", func(t *testing.T) {
		req := validSignup()
		req.FullName = "soon removed"
		req.Email = "removed@example.com"
		other, err := f.svc.Signup(ctx, req)
		require.NoError(t, err)

		f.users.Delete(other.User.ID)
		_, err = f.svc.ResolveAccessToken(ctx, other.Tokens.AccessToken)
		assert.True(t, apperrors.IsUnauthorized(err))
	})
}
