package auth

// Package auth contains simple hand-written test doubles for auth
// dependencies. These are lightweight and suitable for unit tests without
// codegen.

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jobfinder/jobfinder-api/internal/core"
	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
	"github.com/jobfinder/jobfinder-api/internal/ports"
)

// Ensure compile-time conformance.
var (
	_ core.UserRepository     = (*MemoryUserRepo)(nil)
	_ ports.RevokedTokenStore = (*MemoryRevokedTokenStore)(nil)
	_ ports.PasswordHasher    = (*PlainHasher)(nil)
)

// MemoryUserRepo is an in-memory core.UserRepository for tests.
type MemoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

// NewMemoryUserRepo creates an empty in-memory user repo.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]*model.User)}
}

// Create stores a new user, enforcing unique full names and emails.
func (r *MemoryUserRepo) Create(_ context.Context, params core.CreateUserParams) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.FullName == params.FullName || u.Email == params.Email {
			return nil, apperrors.Conflict("This value already exists. Please choose a different one.")
		}
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:        uuid.NewString(),
		FullName:  params.FullName,
		Email:     params.Email,
		Password:  params.Password,
		Role:      domainauth.Role(params.Role),
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.users[user.ID] = user
	copied := *user
	return &copied, nil
}

// GetByID looks a user up by id.
func (r *MemoryUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.NotFound("Resource not found")
}

// GetByFullName looks a user up by full name.
func (r *MemoryUserRepo) GetByFullName(_ context.Context, fullName string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.FullName == fullName {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("Resource not found")
}

// SetActive flips the is_active flag.
func (r *MemoryUserRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperrors.NotFound("Resource not found")
	}
	u.IsActive = active
	return nil
}

// Delete removes a user, simulating account deletion mid-session.
func (r *MemoryUserRepo) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

// MemoryRevokedTokenStore is an in-memory ports.RevokedTokenStore for tests.
type MemoryRevokedTokenStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewMemoryRevokedTokenStore creates an empty in-memory denylist.
func NewMemoryRevokedTokenStore() *MemoryRevokedTokenStore {
	return &MemoryRevokedTokenStore{entries: make(map[string]time.Time)}
}

// Revoke records a token id with its expiry.
func (s *MemoryRevokedTokenStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tokenID] = time.Now().Add(ttl)
	return nil
}

// Consume atomically claims a token id, mirroring the SET NX semantics of
// the Redis store.
func (s *MemoryRevokedTokenStore) Consume(_ context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if expiry, ok := s.entries[tokenID]; ok && time.Now().Before(expiry) {
		return false, nil
	}
	s.entries[tokenID] = time.Now().Add(ttl)
	return true, nil
}

// IsRevoked reports whether the token id is on the denylist and unexpired.
func (s *MemoryRevokedTokenStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.entries[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(s.entries, tokenID)
		return false, nil
	}
	return true, nil
}

// PlainHasher is a no-op ports.PasswordHasher: the "hash" is the password
// itself. It keeps auth tests fast where bcrypt cost is irrelevant.
type PlainHasher struct{}

// Hash returns the password unchanged.
func (PlainHasher) Hash(password string) (string, error) { return password, nil }

// Compare checks for string equality.
func (PlainHasher) Compare(hash, password string) error {
	if hash != password {
		return apperrors.Unauthorized("password mismatch")
	}
	return nil
}
