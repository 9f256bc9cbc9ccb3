package model

import (
	"errors"
	"time"
)

// ApplicationStatus tracks where an application stands in the owner's review.
type ApplicationStatus int

const (
	ApplicationStatusPending ApplicationStatus = iota
	ApplicationStatusReviewed
	ApplicationStatusRejected
	ApplicationStatusInterview
)

// Valid reports whether the status is a known value.
func (s ApplicationStatus) Valid() bool {
	return s >= ApplicationStatusPending && s <= ApplicationStatusInterview
}

// Label returns the human-readable status used in notification messages.
func (s ApplicationStatus) Label() string {
	switch s {
	case ApplicationStatusReviewed:
		return "Reviewed"
	case ApplicationStatusRejected:
		return "Rejected"
	case ApplicationStatusInterview:
		return "Interview approved"
	default:
		return "Pending"
	}
}

// Application represents a user's application to a job. Applicant identity
// fields are denormalized at apply time so owner listings need no join back
// to users.
type Application struct {
	ID        string            `json:"id"        db:"id"`
	JobID     string            `json:"jobId"     db:"job_id"`
	UserID    string            `json:"userId"    db:"user_id"`
	FullName  string            `json:"fullName"  db:"full_name"`
	Email     string            `json:"email"     db:"email"`
	ResumeURL string            `json:"resumeUrl" db:"resume_url"`
	Status    ApplicationStatus `json:"status"    db:"status"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`
}

// ApplicationWithJob pairs an application with the summary of its job,
// returned by the seeker's "my applications" listing.
type ApplicationWithJob struct {
	Application
	JobTitle    string `json:"jobTitle"    db:"job_title"`
	JobCity     string `json:"jobCity"     db:"job_city"`
	JobType     string `json:"jobType"     db:"jt_job_type"`
	JobCategory string `json:"jobCategory" db:"job_category"`
}

// ApplyRequest carries the fields accepted by the apply endpoint.
type ApplyRequest struct {
	JobID string `json:"jobId"`
}

// Validate validates ApplyRequest.
func (r *ApplyRequest) Validate() error {
	if r.JobID == "" {
		return errors.New("jobId is required")
	}
	return nil
}

// UpdateApplicationStatusRequest carries a status transition.
type UpdateApplicationStatusRequest struct {
	Status ApplicationStatus `json:"status"`
}

// Validate validates UpdateApplicationStatusRequest.
func (r *UpdateApplicationStatusRequest) Validate() error {
	if !r.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}
