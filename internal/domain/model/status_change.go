package model

import (
	"errors"
	"time"
)

// StatusChange is the audit row recorded when an employee toggles a job's
// activation state.
type StatusChange struct {
	ID         string    `json:"id"         db:"id"`
	EmployeeID string    `json:"employeeId" db:"employee_id"`
	JobID      string    `json:"jobId"      db:"job_id"`
	OldStatus  int       `json:"oldStatus"  db:"old_status"`
	NewStatus  int       `json:"newStatus"  db:"new_status"`
	Message    string    `json:"message"    db:"message"`
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`
}

// ChangeJobActiveRequest carries an employee's moderation decision.
type ChangeJobActiveRequest struct {
	JobID    string `json:"jobId"`
	IsActive *bool  `json:"isActive"`
	Message  string `json:"message"`
}

// Validate validates ChangeJobActiveRequest.
func (r *ChangeJobActiveRequest) Validate() error {
	if r.JobID == "" || r.IsActive == nil {
		return errors.New("jobId and isActive are required")
	}
	return nil
}
