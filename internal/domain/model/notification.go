package model

import (
	"errors"
	"strings"
	"time"
)

// NotificationType categorizes a notification's origin.
type NotificationType string

const (
	NotificationTypeSystem NotificationType = "SYSTEM"
	NotificationTypeJob    NotificationType = "JOB"
	NotificationTypeTicket NotificationType = "TICKET"
)

// Valid reports whether the notification type is supported.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeSystem, NotificationTypeJob, NotificationTypeTicket:
		return true
	default:
		return false
	}
}

// Notification is a message relayed to a user when state affecting them
// changes (new applicant, status transition, moderation decision).
type Notification struct {
	ID          string           `json:"id"          db:"id"`
	Title       string           `json:"title"       db:"title"`
	Message     string           `json:"message"     db:"message"`
	Type        NotificationType `json:"type"        db:"type"`
	RecipientID string           `json:"recipientId" db:"recipient_id"`
	SenderID    string           `json:"senderId"    db:"sender_id"`
	SenderName  string           `json:"senderName"  db:"sender_name"`
	IsRead      bool             `json:"isRead"      db:"is_read"`
	CreatedAt   time.Time        `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt"   db:"updated_at"`
}

// SendNotificationRequest carries the fields needed to create a notification.
type SendNotificationRequest struct {
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	RecipientID string           `json:"recipientId"`
	SenderID    string           `json:"-"`
	SenderName  string           `json:"-"`
	Type        NotificationType `json:"type"`
}

// Validate validates SendNotificationRequest.
func (r *SendNotificationRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Message) == "" ||
		strings.TrimSpace(r.RecipientID) == "" || r.Type == "" {
		return errors.New("all fields are required")
	}
	if !r.Type.Valid() {
		return errors.New("invalid notification type")
	}
	return nil
}
