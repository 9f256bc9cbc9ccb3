package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jobfinder/jobfinder-api/internal/data/pgxutil"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
)

const applicationColumns = `id, job_id, user_id, full_name, email, resume_url,
	status, created_at, updated_at`

// ApplicationRepo provides database operations for job applications.
type ApplicationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewApplicationRepo creates a new ApplicationRepo with real time provider.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewApplicationRepoWithTimeProvider creates an ApplicationRepo with a custom time provider.
func NewApplicationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: tp}
}

// Create inserts a new application. The (job_id, user_id) unique constraint
// turns a second apply into a Conflict error.
func (r *ApplicationRepo) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	if app == nil || app.JobID == "" || app.UserID == "" {
		return nil, errors.New("application with job and user IDs is required")
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO applications (
				job_id, user_id, full_name, email, resume_url, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			RETURNING `+applicationColumns,
			app.JobID, app.UserID, app.FullName, app.Email, app.ResumeURL,
			model.ApplicationStatusPending, createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves an application by id.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	return r.getByQuery(ctx,
		"SELECT "+applicationColumns+" FROM applications WHERE id = $1", id)
}

// GetByJobAndUser retrieves a user's application for a specific job.
func (r *ApplicationRepo) GetByJobAndUser(ctx context.Context, jobID, userID string) (*model.Application, error) {
	return r.getByQuery(ctx,
		"SELECT "+applicationColumns+" FROM applications WHERE job_id = $1 AND user_id = $2",
		jobID, userID)
}

func (r *ApplicationRepo) getByQuery(ctx context.Context, query string, args ...any) (*model.Application, error) {
	var out model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByJob retrieves the applications for one job, newest first.
func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]*model.Application, error) {
	var rowsOut []model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			"SELECT "+applicationColumns+" FROM applications WHERE job_id = $1 ORDER BY created_at DESC",
			jobID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Application, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListByUser retrieves the user's applications joined with the job summary.
func (r *ApplicationRepo) ListByUser(ctx context.Context, userID string) ([]*model.ApplicationWithJob, error) {
	var rowsOut []model.ApplicationWithJob
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT a.id, a.job_id, a.user_id, a.full_name, a.email, a.resume_url,
				a.status, a.created_at, a.updated_at,
				j.title AS job_title, j.city AS job_city,
				j.job_type AS jt_job_type, j.category AS job_category
			FROM applications a
			JOIN jobs j ON j.id = a.job_id
			WHERE a.user_id = $1
			ORDER BY a.created_at DESC`,
			userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ApplicationWithJob])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list user applications: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.ApplicationWithJob, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateStatus writes a status transition and returns the updated row.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error) {
	if !status.Valid() {
		return nil, errors.New("invalid application status")
	}

	var out model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3
			RETURNING `+applicationColumns,
			status, r.timeProvider.Now().UTC(), id,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
