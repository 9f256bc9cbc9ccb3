// Package devseed inserts well-known development accounts so every role is
// exercisable locally without touching the database by hand. EMPLOYEE and
// ADMIN accounts cannot be created through the signup endpoint at all.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jobfinder/jobfinder-api/internal/core"
	"github.com/jobfinder/jobfinder-api/internal/data"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
	"github.com/jobfinder/jobfinder-api/internal/ports"
)

// DevPassword is the plaintext password shared by all seeded accounts.
const DevPassword = "devpass123"

// Deps bundles what seeding needs.
type Deps struct {
	DB     *sql.DB
	Hasher ports.PasswordHasher
	Logger *slog.Logger
}

// Run seeds one account per role plus a live sample posting. It is
// idempotent: accounts that already exist are left untouched.
func Run(ctx context.Context, deps Deps) error {
	users := data.NewUserRepo(deps.DB)
	jobs := data.NewJobRepo(deps.DB)

	hash, err := deps.Hasher.Hash(DevPassword)
	if err != nil {
		return fmt.Errorf("hash dev password: %w", err)
	}

	accounts := []core.CreateUserParams{
		{FullName: "dev seeker", Email: "seeker@dev.local", Password: hash, Role: "USER"},
		{FullName: "dev owner", Email: "owner@dev.local", Password: hash, Role: "OWNER"},
		{FullName: "dev employee", Email: "employee@dev.local", Password: hash, Role: "EMPLOYEE"},
		{FullName: "dev admin", Email: "admin@dev.local", Password: hash, Role: "ADMIN"},
	}

	var owner *model.User
	for _, params := range accounts {
		user, seedErr := seedUser(ctx, users, params)
		if seedErr != nil {
			return seedErr
		}
		if params.Role == "OWNER" {
			owner = user
		}
	}

	if err := seedJob(ctx, jobs, owner); err != nil {
		return err
	}

	deps.Logger.InfoContext(ctx, "development data seeded", "password", DevPassword)
	return nil
}

func seedUser(ctx context.Context, users *data.UserRepo, params core.CreateUserParams) (*model.User, error) {
	existing, err := users.GetByFullName(ctx, params.FullName)
	if err == nil {
		return existing, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("look up seed account %q: %w", params.FullName, err)
	}

	user, err := users.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create seed account %q: %w", params.FullName, err)
	}
	// Seeded accounts skip profile completion.
	if err := users.SetActive(ctx, user.ID, true); err != nil {
		return nil, fmt.Errorf("activate seed account %q: %w", params.FullName, err)
	}
	return user, nil
}

func seedJob(ctx context.Context, jobs *data.JobRepo, owner *model.User) error {
	if owner == nil {
		return nil
	}

	existing, err := jobs.ListByOwner(ctx, owner.ID)
	if err != nil {
		return fmt.Errorf("list seed postings: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	job, err := jobs.Create(ctx, &model.Job{
		OwnerID:     owner.ID,
		Title:       "Backend Engineer",
		Description: "Sample posting seeded for development.",
		Experience:  "3 years",
		Salary:      "negotiable",
		City:        "Berlin",
		JobType:     "full-time",
		Category:    "engineering",
	})
	if err != nil {
		return fmt.Errorf("create seed posting: %w", err)
	}
	// Postings start inactive; flip it live so the board has content.
	if err := jobs.SetActive(ctx, job.ID, true); err != nil {
		return fmt.Errorf("activate seed posting: %w", err)
	}
	return nil
}
