package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobfinder/jobfinder-api/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestRevokedTokenStore_RevokeAndCheck(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewRevokedTokenStore(client)
	ctx := context.Background()

	err := store.Revoke(ctx, "jti-revoked-1", 30*time.Minute)
	require.NoError(t, err)

	revoked, err := store.IsRevoked(ctx, "jti-revoked-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "jti-never-seen")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevokedTokenStore_ConsumeIsSingleUse(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewRevokedTokenStore(client)
	ctx := context.Background()

	consumed, err := store.Consume(ctx, "jti-consume-1", 30*time.Minute)
	require.NoError(t, err)
	assert.True(t, consumed)

	consumed, err = store.Consume(ctx, "jti-consume-1", 30*time.Minute)
	require.NoError(t, err)
	assert.False(t, consumed, "second claim of the same id must lose")

	revoked, err := store.IsRevoked(ctx, "jti-consume-1")
	require.NoError(t, err)
	assert.True(t, revoked, "a consumed id doubles as a denylist entry")

	consumed, err = store.Consume(ctx, "jti-consume-expired", -time.Minute)
	require.NoError(t, err)
	assert.False(t, consumed, "expired tokens have nothing left to claim")
}

func TestRevokedTokenStore_EmptyTokenID(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewRevokedTokenStore(client)
	ctx := context.Background()

	err := store.Revoke(ctx, "", time.Minute)
	assert.Error(t, err)

	revoked, err := store.IsRevoked(ctx, "")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevokedTokenStore_ExpiredTTLIsNoop(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewRevokedTokenStore(client)
	ctx := context.Background()

	err := store.Revoke(ctx, "jti-already-expired", -time.Minute)
	require.NoError(t, err)

	revoked, err := store.IsRevoked(ctx, "jti-already-expired")
	require.NoError(t, err)
	assert.False(t, revoked, "expired tokens need no denylist entry")
}

func TestRevokedTokenStore_EntryExpires(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewRevokedTokenStoreWithPrefix(client, "revoked-test:")
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-short-lived", 500*time.Millisecond))

	revoked, err := store.IsRevoked(ctx, "jti-short-lived")
	require.NoError(t, err)
	assert.True(t, revoked)

	time.Sleep(700 * time.Millisecond)

	revoked, err = store.IsRevoked(ctx, "jti-short-lived")
	require.NoError(t, err)
	assert.False(t, revoked, "denylist entry must expire with the token")
}
