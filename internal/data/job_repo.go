package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jobfinder/jobfinder-api/internal/data/database"
	"github.com/jobfinder/jobfinder-api/internal/data/pgxutil"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
)

const jobColumns = `id, owner_id, title, description, experience, salary, city,
	job_type, category, is_active, expires_at, created_at, updated_at`

// jobSortColumns is the allowlist for ORDER BY on job listings. Keys are the
// API-facing names; values are the real columns.
var jobSortColumns = map[string]string{
	"created_at": "created_at",
	"createdAt":  "created_at",
	"salary":     "salary",
	"title":      "title",
}

// JobRepo provides database operations for job postings.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a new JobRepo with real time provider.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewJobRepoWithTimeProvider creates a JobRepo with a custom time provider.
func NewJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobRepo {
	return &JobRepo{DB: db, timeProvider: tp}
}

// Create inserts a new job posting. Postings start inactive and expire 60
// days after creation.
func (r *JobRepo) Create(ctx context.Context, job *model.Job) (*model.Job, error) {
	if job == nil || job.OwnerID == "" {
		return nil, errors.New("job with owner ID is required")
	}

	createdAt := r.timeProvider.Now().UTC()
	expiresAt := createdAt.Add(model.JobPostingLifetime)

	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO jobs (
				owner_id, title, description, experience, salary, city,
				job_type, category, is_active, expires_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10, $10)
			RETURNING `+jobColumns,
			job.OwnerID, job.Title, job.Description, job.Experience, job.Salary,
			job.City, job.JobType, job.Category, expiresAt, createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a job by id.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = $1", id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Update writes the mutable posting columns and returns the row.
func (r *JobRepo) Update(ctx context.Context, job *model.Job) (*model.Job, error) {
	if job == nil || job.ID == "" {
		return nil, errors.New("job with ID is required")
	}

	var out model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE jobs SET
				title = $1, description = $2, experience = $3, salary = $4,
				city = $5, job_type = $6, category = $7, updated_at = $8
			WHERE id = $9
			RETURNING `+jobColumns,
			job.Title, job.Description, job.Experience, job.Salary,
			job.City, job.JobType, job.Category,
			r.timeProvider.Now().UTC(), job.ID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a job posting.
func (r *JobRepo) Delete(ctx context.Context, id string) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, "DELETE FROM jobs WHERE id = $1", id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// ListActive retrieves active, unexpired postings with optional search,
// filters and sorting for the public board.
func (r *JobRepo) ListActive(ctx context.Context, opts *model.JobsListOptions) ([]*model.Job, error) {
	if opts == nil {
		opts = &model.JobsListOptions{}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	conds := []database.Condition{
		database.WhereCond("is_active", database.Equal, true),
		database.WhereCond("expires_at", database.GreaterThan, r.timeProvider.Now().UTC()),
	}
	if opts.Search != nil && *opts.Search != "" {
		conds = append(conds, database.WhereRawCond(
			"(title ILIKE $%[1]d OR description ILIKE $%[1]d)", "%"+*opts.Search+"%"))
	}
	if opts.City != nil && *opts.City != "" {
		conds = append(conds, database.WhereCond("city", database.IEqual, *opts.City))
	}
	if opts.Category != nil && *opts.Category != "" {
		conds = append(conds, database.WhereCond("category", database.IEqual, *opts.Category))
	}

	orderBy, ok := jobSortColumns[opts.SortBy]
	if !ok {
		orderBy = "created_at"
	}

	query, args := database.BuildListQuery(database.ListQueryOptions{
		Table:      "jobs",
		Columns:    []string{jobColumns},
		Conditions: conds,
		OrderBy:    orderBy,
		OrderDir:   opts.SortOrder,
		Limit:      limit,
		Offset:     offset,
	})

	return r.collectJobs(ctx, query, args...)
}

// ListByOwner retrieves every posting an owner created, newest first.
func (r *JobRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.Job, error) {
	return r.collectJobs(ctx,
		"SELECT "+jobColumns+" FROM jobs WHERE owner_id = $1 ORDER BY created_at DESC", ownerID)
}

// List retrieves postings regardless of state, for moderation.
func (r *JobRepo) List(ctx context.Context, limit, offset int) ([]*model.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return r.collectJobs(ctx,
		"SELECT "+jobColumns+" FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
}

func (r *JobRepo) collectJobs(ctx context.Context, query string, args ...any) ([]*model.Job, error) {
	var rowsOut []model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Job, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// SetActive flips the is_active flag on a posting.
func (r *JobRepo) SetActive(ctx context.Context, id string, active bool) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx,
			"UPDATE jobs SET is_active = $1, updated_at = $2 WHERE id = $3",
			active, r.timeProvider.Now().UTC(), id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}
