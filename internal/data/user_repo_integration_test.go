package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobfinder/jobfinder-api/internal/core"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
	"github.com/jobfinder/jobfinder-api/internal/testutil"
)

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestUserRepo_Integration_CreateAndLookup(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)
		profiles := NewProfileRepo(db)
		ctx := context.Background()

		name := uniqueName("jane doe")
		created, err := repo.Create(ctx, core.CreateUserParams{
			FullName: name,
			Email:    name + "@example.com",
			Password: "hashed-password",
			Role:     "USER",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, name, created.FullName)
		assert.False(t, created.IsActive, "accounts start inactive")

		byName, err := repo.GetByFullName(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, created.ID, byName.ID)

		// Create opens an empty profile row in the same transaction.
		profile, err := profiles.GetByUserID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, profile.UserID)
	})
}

func TestUserRepo_Integration_DuplicateFullName(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)
		ctx := context.Background()

		params := core.CreateUserParams{
			FullName: uniqueName("dup user"),
			Email:    uniqueName("dup") + "@example.com",
			Password: "hashed-password",
			Role:     "USER",
		}
		_, err := repo.Create(ctx, params)
		require.NoError(t, err)

		params.Email = uniqueName("other") + "@example.com"
		_, err = repo.Create(ctx, params)
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err), "duplicate full name should map to conflict, got %v", err)
	})
}

func TestUserRepo_Integration_SetActive(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)
		ctx := context.Background()

		name := uniqueName("activate me")
		created, err := repo.Create(ctx, core.CreateUserParams{
			FullName: name,
			Email:    name + "@example.com",
			Password: "hashed-password",
			Role:     "OWNER",
		})
		require.NoError(t, err)

		require.NoError(t, repo.SetActive(ctx, created.ID, true))

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, got.IsActive)

		err = repo.SetActive(ctx, "00000000-0000-0000-0000-000000000000", true)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
