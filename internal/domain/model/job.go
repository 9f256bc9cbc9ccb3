package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxJobTitleLen = 150
	// New postings expire 60 days after creation.
	JobPostingLifetime = 60 * 24 * time.Hour
)

// Job represents a posting created by an owner. Postings start inactive and
// stay hidden from public listings until an employee activates them.
type Job struct {
	ID          string    `json:"id"          db:"id"`
	OwnerID     string    `json:"ownerId"     db:"owner_id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	Experience  string    `json:"experience"  db:"experience"`
	Salary      string    `json:"salary"      db:"salary"`
	City        string    `json:"city"        db:"city"`
	JobType     string    `json:"jobType"     db:"job_type"`
	Category    string    `json:"category"    db:"category"`
	IsActive    bool      `json:"isActive"    db:"is_active"`
	ExpiresAt   time.Time `json:"expiresAt"   db:"expires_at"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}

// CreateJobRequest represents parameters to create a Job.
type CreateJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Experience  string `json:"experience"`
	Salary      string `json:"salary"`
	City        string `json:"city"`
	JobType     string `json:"jobType"`
	Category    string `json:"category"`
}

// Validate validates CreateJobRequest.
func (r *CreateJobRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if anyBlank(r.Title, r.Description, r.Experience, r.Salary, r.City, r.JobType, r.Category) {
		return errors.New("all fields are required")
	}
	if utf8.RuneCountInString(r.Title) > maxJobTitleLen {
		return errors.New("title cannot exceed 150 characters")
	}
	return nil
}

// UpdateJobRequest represents parameters to update a Job. Nil fields keep
// their current value.
type UpdateJobRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Experience  *string `json:"experience,omitempty"`
	Salary      *string `json:"salary,omitempty"`
	City        *string `json:"city,omitempty"`
	JobType     *string `json:"jobType,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateJobRequest.
func (r *UpdateJobRequest) HasUpdates() bool {
	return r.Title != nil || r.Description != nil || r.Experience != nil ||
		r.Salary != nil || r.City != nil || r.JobType != nil || r.Category != nil
}

// Validate validates UpdateJobRequest, ensuring at least one field is set.
func (r *UpdateJobRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(title) > maxJobTitleLen {
			return errors.New("title cannot exceed 150 characters")
		}
	}
	return nil
}

// JobsListOptions controls filtering and sorting for public job listings.
// Notes:
// - Search matches title or description via ILIKE substring.
// - City and Category match case-insensitively.
// - SortBy supports: "created_at", "salary", "title"; SortOrder: "asc", "desc".
type JobsListOptions struct {
	Search    *string
	City      *string
	Category  *string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}
