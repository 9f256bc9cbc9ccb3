package redis

// Package redis provides Redis-based adapters for the jobfinder system.

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevokedTokenStore is a Redis-backed denylist of refresh token ids. A token
// id is added on logout and on rotation; the entry carries a TTL equal to the
// token's remaining validity so the denylist never outlives the tokens it
// blocks.
type RevokedTokenStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRevokedTokenStore creates a new Redis-based revoked token store.
func NewRevokedTokenStore(client redis.UniversalClient) *RevokedTokenStore {
	return &RevokedTokenStore{
		client: client,
		prefix: "revoked:",
	}
}

// NewRevokedTokenStoreWithPrefix creates a store with a custom key prefix.
func NewRevokedTokenStoreWithPrefix(client redis.UniversalClient, prefix string) *RevokedTokenStore {
	return &RevokedTokenStore{
		client: client,
		prefix: prefix,
	}
}

// Revoke marks a refresh token id as no longer acceptable. Tokens that have
// already expired need no entry.
func (s *RevokedTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token ID cannot be empty")
	}
	if ttl <= 0 {
		// Token already expired; verification rejects it regardless.
		return nil
	}
	return s.client.Set(ctx, s.prefix+tokenID, "1", ttl).Err()
}

// Consume claims a token id for rotation via SET NX, so only one of any
// number of concurrent presentations wins. The claim doubles as the denylist
// entry for the consumed token.
func (s *RevokedTokenStore) Consume(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if tokenID == "" {
		return false, errors.New("token ID cannot be empty")
	}
	if ttl <= 0 {
		// Token already expired; nothing left to claim.
		return false, nil
	}
	return s.client.SetNX(ctx, s.prefix+tokenID, "1", ttl).Result()
}

// IsRevoked reports whether the token id is on the denylist.
func (s *RevokedTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	_, err := s.client.Get(ctx, s.prefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
