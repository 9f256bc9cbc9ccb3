package service

import (
	"context"
	"time"

	"github.com/jobfinder/jobfinder-api/internal/core"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
)

// JobService handles owner postings and the public job board.
type JobService struct {
	jobs core.JobRepository
	now  func() time.Time
}

// NewJobService constructs a new JobService.
func NewJobService(jobs core.JobRepository) *JobService {
	return &JobService{jobs: jobs, now: time.Now}
}

// NewJobServiceWithClock constructs a JobService with a custom clock (useful for tests).
func NewJobServiceWithClock(jobs core.JobRepository, now func() time.Time) *JobService {
	return &JobService{jobs: jobs, now: now}
}

// Create adds a posting for the owner. New postings start inactive and wait
// for employee review before appearing on the board.
func (s *JobService) Create(ctx context.Context, ownerID string, req model.CreateJobRequest) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.jobs.Create(ctx, &model.Job{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Experience:  req.Experience,
		Salary:      req.Salary,
		City:        req.City,
		JobType:     req.JobType,
		Category:    req.Category,
	})
}

// Update edits one of the owner's postings.
func (s *JobService) Update(ctx context.Context, ownerID, jobID string, req model.UpdateJobRequest) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	job, err := s.ownedJob(ctx, ownerID, jobID)
	if err != nil {
		return nil, err
	}

	applyJobUpdate(job, req)
	return s.jobs.Update(ctx, job)
}

// Delete removes one of the owner's postings.
func (s *JobService) Delete(ctx context.Context, ownerID, jobID string) error {
	if _, err := s.ownedJob(ctx, ownerID, jobID); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, jobID)
}

// ListMine returns every posting the owner created, in any state.
func (s *JobService) ListMine(ctx context.Context, ownerID string) ([]*model.Job, error) {
	return s.jobs.ListByOwner(ctx, ownerID)
}

// GetMine returns one of the owner's postings.
func (s *JobService) GetMine(ctx context.Context, ownerID, jobID string) (*model.Job, error) {
	return s.ownedJob(ctx, ownerID, jobID)
}

// ListBoard returns active, unexpired postings for the public board.
func (s *JobService) ListBoard(ctx context.Context, opts *model.JobsListOptions) ([]*model.Job, error) {
	return s.jobs.ListActive(ctx, opts)
}

// GetBoard returns a single posting for the public board. Inactive and
// expired postings are indistinguishable from missing ones.
func (s *JobService) GetBoard(ctx context.Context, jobID string) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsActive || !job.ExpiresAt.After(s.now()) {
		return nil, apperrors.NotFound("Job not found")
	}
	return job, nil
}

func (s *JobService) ownedJob(ctx context.Context, ownerID, jobID string) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.OwnerID != ownerID {
		// Hide other owners' postings rather than acknowledging them.
		return nil, apperrors.NotFound("Job not found")
	}
	return job, nil
}

func applyJobUpdate(job *model.Job, req model.UpdateJobRequest) {
	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Experience != nil {
		job.Experience = *req.Experience
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}
	if req.City != nil {
		job.City = *req.City
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.Category != nil {
		job.Category = *req.Category
	}
}
