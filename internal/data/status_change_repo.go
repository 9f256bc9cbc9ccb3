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

const statusChangeColumns = `id, employee_id, job_id, old_status, new_status, message, created_at`

// StatusChangeRepo records job moderation decisions for auditing.
type StatusChangeRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewStatusChangeRepo creates a new StatusChangeRepo with real time provider.
func NewStatusChangeRepo(db *sql.DB) *StatusChangeRepo {
	return &StatusChangeRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewStatusChangeRepoWithTimeProvider creates a StatusChangeRepo with a custom time provider.
func NewStatusChangeRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *StatusChangeRepo {
	return &StatusChangeRepo{DB: db, timeProvider: tp}
}

// Create inserts an audit row for a moderation decision.
func (r *StatusChangeRepo) Create(ctx context.Context, sc *model.StatusChange) (*model.StatusChange, error) {
	if sc == nil || sc.EmployeeID == "" || sc.JobID == "" {
		return nil, errors.New("status change with employee and job IDs is required")
	}

	var out model.StatusChange
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO status_changes (employee_id, job_id, old_status, new_status, message, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+statusChangeColumns,
			sc.EmployeeID, sc.JobID, sc.OldStatus, sc.NewStatus, sc.Message,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.StatusChange])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByJob retrieves the moderation history of one job, newest first.
func (r *StatusChangeRepo) ListByJob(ctx context.Context, jobID string) ([]*model.StatusChange, error) {
	var rowsOut []model.StatusChange
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			"SELECT "+statusChangeColumns+" FROM status_changes WHERE job_id = $1 ORDER BY created_at DESC",
			jobID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.StatusChange])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list status changes: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.StatusChange, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListByEmployee retrieves every decision one employee made, newest first.
func (r *StatusChangeRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*model.StatusChange, error) {
	var rowsOut []model.StatusChange
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			"SELECT "+statusChangeColumns+" FROM status_changes WHERE employee_id = $1 ORDER BY created_at DESC",
			employeeID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.StatusChange])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list status changes: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.StatusChange, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
