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

const notificationColumns = `id, title, message, type, recipient_id, sender_id,
	sender_name, is_read, created_at, updated_at`

// NotificationRepo provides database operations for notifications.
type NotificationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewNotificationRepo creates a new NotificationRepo with real time provider.
func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewNotificationRepoWithTimeProvider creates a NotificationRepo with a custom time provider.
func NewNotificationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *NotificationRepo {
	return &NotificationRepo{DB: db, timeProvider: tp}
}

// Create inserts a new notification.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if n == nil || n.RecipientID == "" {
		return nil, errors.New("notification with recipient ID is required")
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Notification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO notifications (
				title, message, type, recipient_id, sender_id, sender_name, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			RETURNING `+notificationColumns,
			n.Title, n.Message, n.Type, n.RecipientID, n.SenderID, n.SenderName, createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Notification])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByRecipient retrieves a user's notifications, newest first.
func (r *NotificationRepo) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*model.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Notification
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			"SELECT "+notificationColumns+` FROM notifications
			WHERE recipient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			recipientID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Notification])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Notification, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// MarkRead marks one of the recipient's notifications as read. The recipient
// filter stops users from flipping other people's notifications.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, recipientID string) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `
			UPDATE notifications SET is_read = TRUE, updated_at = $1
			WHERE id = $2 AND recipient_id = $3`,
			r.timeProvider.Now().UTC(), id, recipientID)
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

// CountUnread returns the recipient's unread notification count.
func (r *NotificationRepo) CountUnread(ctx context.Context, recipientID string) (int, error) {
	var count int
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE",
			recipientID).Scan(&count)
	})
	if err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return count, nil
}
