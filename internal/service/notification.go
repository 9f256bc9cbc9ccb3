package service

import (
	"context"

	"github.com/jobfinder/jobfinder-api/internal/core"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
)

// NotificationService relays messages to users and manages their inbox.
type NotificationService struct {
	notifications core.NotificationRepository
}

// NewNotificationService constructs a new NotificationService.
func NewNotificationService(notifications core.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// Send validates and persists a notification.
func (s *NotificationService) Send(ctx context.Context, req model.SendNotificationRequest) (*model.Notification, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.notifications.Create(ctx, &model.Notification{
		Title:       req.Title,
		Message:     req.Message,
		Type:        req.Type,
		RecipientID: req.RecipientID,
		SenderID:    req.SenderID,
		SenderName:  req.SenderName,
	})
}

// ListMine returns the caller's notifications, newest first.
func (s *NotificationService) ListMine(ctx context.Context, userID string, limit, offset int) ([]*model.Notification, error) {
	return s.notifications.ListByRecipient(ctx, userID, limit, offset)
}

// MarkRead marks one of the caller's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if id == "" {
		return apperrors.Validation("notification id is required")
	}
	return s.notifications.MarkRead(ctx, id, userID)
}

// CountUnread returns the caller's unread notification count.
func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.notifications.CountUnread(ctx, userID)
}
