package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jobfinder/jobfinder-api/internal/core"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
)

// ApplicationServiceOptions groups dependencies for ApplicationService.
type ApplicationServiceOptions struct {
	Applications  core.ApplicationRepository
	Jobs          core.JobRepository
	Profiles      core.ProfileRepository
	Notifications *NotificationService
	Logger        *slog.Logger
}

// ApplicationService handles seekers applying to jobs and owners reviewing
// the applications.
type ApplicationService struct {
	applications  core.ApplicationRepository
	jobs          core.JobRepository
	profiles      core.ProfileRepository
	notifications *NotificationService
	logger        *slog.Logger
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(opts ApplicationServiceOptions) *ApplicationService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationService{
		applications:  opts.Applications,
		jobs:          opts.Jobs,
		profiles:      opts.Profiles,
		notifications: opts.Notifications,
		logger:        logger,
	}
}

// Apply submits the seeker's application to an active job. The profile must
// be completed (resume on file) and a seeker can apply to each job once. The
// owner is notified about the new applicant.
func (s *ApplicationService) Apply(ctx context.Context, user *model.User, req model.ApplyRequest) (*model.Application, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if !user.IsActive {
		return nil, apperrors.Validation("Please complete your profile before applying")
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile.ResumeURL == nil || *profile.ResumeURL == "" {
		return nil, apperrors.Validation("A resume is required to apply")
	}

	job, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if !job.IsActive {
		return nil, apperrors.NotFound("Job not found")
	}

	app, err := s.applications.Create(ctx, &model.Application{
		JobID:     job.ID,
		UserID:    user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		ResumeURL: *profile.ResumeURL,
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			return nil, apperrors.Conflict("You have already applied to this job")
		}
		return nil, err
	}

	// Notification failure must not undo the application.
	if _, notifyErr := s.notifications.Send(ctx, model.SendNotificationRequest{
		Title:       "New application",
		Message:     fmt.Sprintf("%s applied to your job %q.", user.FullName, job.Title),
		Type:        model.NotificationTypeJob,
		RecipientID: job.OwnerID,
		SenderID:    user.ID,
		SenderName:  user.FullName,
	}); notifyErr != nil {
		s.logger.WarnContext(ctx, "failed to notify owner of new application",
			"error", notifyErr, "job_id", job.ID, "owner_id", job.OwnerID)
	}

	return app, nil
}

// ListMine returns the seeker's applications with their job summaries.
func (s *ApplicationService) ListMine(ctx context.Context, userID string) ([]*model.ApplicationWithJob, error) {
	return s.applications.ListByUser(ctx, userID)
}

// ListForJob returns the applications on one of the owner's postings.
func (s *ApplicationService) ListForJob(ctx context.Context, ownerID, jobID string) ([]*model.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.OwnerID != ownerID {
		return nil, apperrors.NotFound("Job not found")
	}
	return s.applications.ListByJob(ctx, jobID)
}

// UpdateStatus moves an application through the owner's review pipeline and
// notifies the applicant of the decision.
func (s *ApplicationService) UpdateStatus(ctx context.Context, owner *model.User, appID string, req model.UpdateApplicationStatusRequest) (*model.Application, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	app, err := s.applications.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if job.OwnerID != owner.ID {
		return nil, apperrors.NotFound("Application not found")
	}

	updated, err := s.applications.UpdateStatus(ctx, appID, req.Status)
	if err != nil {
		return nil, err
	}

	if _, notifyErr := s.notifications.Send(ctx, model.SendNotificationRequest{
		Title:       "Application update",
		Message:     fmt.Sprintf("Your application for %q is now: %s.", job.Title, req.Status.Label()),
		Type:        model.NotificationTypeJob,
		RecipientID: app.UserID,
		SenderID:    owner.ID,
		SenderName:  owner.FullName,
	}); notifyErr != nil {
		s.logger.WarnContext(ctx, "failed to notify applicant of status change",
			"error", notifyErr, "application_id", appID, "recipient_id", app.UserID)
	}

	return updated, nil
}
