package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jobfinder/jobfinder-api/internal/data/pgxutil"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
)

const profileColumns = `id, user_id, job_title, city, phone_number, resume_url,
	company_name, company_city, address, company_phone, website, owner_phone, logo_url,
	created_at, updated_at`

// ProfileRepo provides database operations for profiles.
type ProfileRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewProfileRepo creates a new ProfileRepo with real time provider.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewProfileRepoWithTimeProvider creates a ProfileRepo with a custom time provider.
func NewProfileRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ProfileRepo {
	return &ProfileRepo{DB: db, timeProvider: tp}
}

// Create inserts an empty profile row for the user. Signup normally does this
// in the same transaction as the user insert; this exists for backfills.
func (r *ProfileRepo) Create(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO profiles (user_id, created_at, updated_at)
			VALUES ($1, $2, $2)
			RETURNING `+profileColumns,
			userID, createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByUserID retrieves the profile belonging to a user.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var out model.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			"SELECT "+profileColumns+" FROM profiles WHERE user_id = $1", userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Update writes the full set of mutable profile columns and returns the row.
func (r *ProfileRepo) Update(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if profile == nil || profile.UserID == "" {
		return nil, errors.New("profile with user ID is required")
	}

	var out model.Profile
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE profiles SET
				job_title = $1, city = $2, phone_number = $3, resume_url = $4,
				company_name = $5, company_city = $6, address = $7, company_phone = $8,
				website = $9, owner_phone = $10, logo_url = $11, updated_at = $12
			WHERE user_id = $13
			RETURNING `+profileColumns,
			profile.JobTitle, profile.City, profile.PhoneNumber, profile.ResumeURL,
			profile.CompanyName, profile.CompanyCity, profile.Address, profile.CompanyPhone,
			profile.Website, profile.OwnerPhone, profile.LogoURL,
			r.timeProvider.Now().UTC(), profile.UserID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
