package httpx

import (
	"net/http"

	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	"github.com/jobfinder/jobfinder-api/internal/service"
)

// NotificationHandlers provides HTTP handlers for the caller's inbox.
type NotificationHandlers struct {
	Svc *service.NotificationService
}

// Send creates a notification addressed to another user. The sender is
// always the caller; client-supplied sender fields are ignored.
// POST /api/v1/notifications.
func (h *NotificationHandlers) Send(w http.ResponseWriter, r *http.Request) {
	var req model.SendNotificationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user := GetUserFromContext(r.Context())
	req.SenderID = user.ID
	req.SenderName = user.FullName

	notification, err := h.Svc.Send(r.Context(), req)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"notification": notification})
}

// ListMine lists the caller's notifications, newest first.
// GET /api/v1/notifications.
func (h *NotificationHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	const (
		defaultPageSize = 20
		maxPageSize     = 100
	)
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)

	user := GetUserFromContext(r.Context())
	notifications, err := h.Svc.ListMine(r.Context(), user.ID, limit, offset)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}

// UnreadCount returns the caller's unread notification count.
// GET /api/v1/notifications/unread-count.
func (h *NotificationHandlers) UnreadCount(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	count, err := h.Svc.CountUnread(r.Context(), user.ID)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"unread": count})
}

// MarkRead marks one of the caller's notifications as read. Notifications
// belonging to other accounts look nonexistent.
// PATCH /api/v1/notifications/{id}/read.
func (h *NotificationHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if err := h.Svc.MarkRead(r.Context(), r.PathValue("id"), user.ID); err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
