package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jobfinder/jobfinder-api/internal/core"
	"github.com/jobfinder/jobfinder-api/internal/data/pgxutil"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
)

const userColumns = "id, full_name, email, password, role, is_active, created_at, updated_at"

// UserRepo provides database operations for users.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// Create inserts a new user with an empty profile row in the same transaction.
func (r *UserRepo) Create(ctx context.Context, params core.CreateUserParams) (*model.User, error) {
	if params.FullName == "" || params.Email == "" || params.Password == "" {
		return nil, errors.New("fullName, email and password are required")
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.User
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO users (full_name, email, password, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+userColumns,
			params.FullName, params.Email, params.Password, params.Role, createdAt,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO profiles (user_id, created_at, updated_at)
			VALUES ($1, $2, $2)`,
			out.ID, createdAt,
		)
		return err
	}})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

// GetByFullName retrieves a user by full name. Sign-in looks accounts up this way.
func (r *UserRepo) GetByFullName(ctx context.Context, fullName string) (*model.User, error) {
	return r.getByQuery(ctx, "SELECT "+userColumns+" FROM users WHERE full_name = $1", fullName)
}

func (r *UserRepo) getByQuery(ctx context.Context, query, arg string) (*model.User, error) {
	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// SetActive flips the is_active flag; profile completion activates the account.
func (r *UserRepo) SetActive(ctx context.Context, id string, active bool) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `
			UPDATE users SET is_active = $1, updated_at = $2 WHERE id = $3`,
			active, r.timeProvider.Now().UTC(), id,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update user active flag: %w", apperrors.MapDBError(err))
	}
	return nil
}
