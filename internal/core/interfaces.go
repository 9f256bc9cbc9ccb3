package core

import (
	"context"

	"github.com/jobfinder/jobfinder-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// CreateUserParams groups fields for UserRepository.Create.
type CreateUserParams struct {
	FullName string
	Email    string
	Password string
	Role     string
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, params CreateUserParams) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByFullName(ctx context.Context, fullName string) (*model.User, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// ProfileRepository defines the interface for profile data operations.
type ProfileRepository interface {
	Create(ctx context.Context, userID string) (*model.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) (*model.Profile, error)
}

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) (*model.Job, error)
	GetByID(ctx context.Context, id string) (*model.Job, error)
	Update(ctx context.Context, job *model.Job) (*model.Job, error)
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context, opts *model.JobsListOptions) ([]*model.Job, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Job, error)
	List(ctx context.Context, limit, offset int) ([]*model.Job, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// ApplicationRepository defines the interface for application data operations.
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) (*model.Application, error)
	GetByID(ctx context.Context, id string) (*model.Application, error)
	GetByJobAndUser(ctx context.Context, jobID, userID string) (*model.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]*model.Application, error)
	ListByUser(ctx context.Context, userID string) ([]*model.ApplicationWithJob, error)
	UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error)
}

// NotificationRepository defines the interface for notification data operations.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
	CountUnread(ctx context.Context, recipientID string) (int, error)
}

// StatusChangeRepository records job moderation decisions.
type StatusChangeRepository interface {
	Create(ctx context.Context, sc *model.StatusChange) (*model.StatusChange, error)
	ListByJob(ctx context.Context, jobID string) ([]*model.StatusChange, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*model.StatusChange, error)
}
