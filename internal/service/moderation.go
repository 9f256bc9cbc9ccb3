package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jobfinder/jobfinder-api/internal/core"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
)

// ModerationServiceOptions groups dependencies for ModerationService.
type ModerationServiceOptions struct {
	Jobs          core.JobRepository
	StatusChanges core.StatusChangeRepository
	Notifications *NotificationService
	Logger        *slog.Logger
}

// ModerationService backs the employee review queue: listing postings in any
// state and toggling their activation with an audit trail.
type ModerationService struct {
	jobs          core.JobRepository
	statusChanges core.StatusChangeRepository
	notifications *NotificationService
	logger        *slog.Logger
}

// NewModerationService constructs a new ModerationService.
func NewModerationService(opts ModerationServiceOptions) *ModerationService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ModerationService{
		jobs:          opts.Jobs,
		statusChanges: opts.StatusChanges,
		notifications: opts.Notifications,
		logger:        logger,
	}
}

// ListJobs returns postings regardless of state for the review queue.
func (s *ModerationService) ListJobs(ctx context.Context, limit, offset int) ([]*model.Job, error) {
	return s.jobs.List(ctx, limit, offset)
}

// History returns the moderation audit trail of a job.
func (s *ModerationService) History(ctx context.Context, jobID string) ([]*model.StatusChange, error) {
	if jobID == "" {
		return nil, apperrors.Validation("jobId is required")
	}
	return s.statusChanges.ListByJob(ctx, jobID)
}

// Processed returns the decisions the calling employee has made.
func (s *ModerationService) Processed(ctx context.Context, employeeID string) ([]*model.StatusChange, error) {
	return s.statusChanges.ListByEmployee(ctx, employeeID)
}

// ChangeJobActive toggles a posting's activation, records the decision, and
// notifies the posting's owner.
func (s *ModerationService) ChangeJobActive(ctx context.Context, employee *model.User, req model.ChangeJobActiveRequest) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	job, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if job.IsActive == *req.IsActive {
		return nil, apperrors.Validation("Job is already in the requested state")
	}

	if setErr := s.jobs.SetActive(ctx, job.ID, *req.IsActive); setErr != nil {
		return nil, setErr
	}

	oldStatus := boolToStatus(job.IsActive)
	job.IsActive = *req.IsActive

	if _, auditErr := s.statusChanges.Create(ctx, &model.StatusChange{
		EmployeeID: employee.ID,
		JobID:      job.ID,
		OldStatus:  oldStatus,
		NewStatus:  boolToStatus(job.IsActive),
		Message:    req.Message,
	}); auditErr != nil {
		return nil, auditErr
	}

	verdict := "deactivated"
	if job.IsActive {
		verdict = "activated"
	}
	if _, notifyErr := s.notifications.Send(ctx, model.SendNotificationRequest{
		Title:       "Job review",
		Message:     fmt.Sprintf("Your job %q has been %s.", job.Title, verdict),
		Type:        model.NotificationTypeSystem,
		RecipientID: job.OwnerID,
		SenderID:    employee.ID,
		SenderName:  employee.FullName,
	}); notifyErr != nil {
		s.logger.WarnContext(ctx, "failed to notify owner of review decision",
			"error", notifyErr, "job_id", job.ID, "owner_id", job.OwnerID)
	}

	return job, nil
}

func boolToStatus(active bool) int {
	if active {
		return 1
	}
	return 0
}
