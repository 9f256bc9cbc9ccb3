package httpx

import (
	"net/http"

	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	"github.com/jobfinder/jobfinder-api/internal/service"
)

// EmployeeHandlers provides HTTP handlers for staff moderation of postings.
type EmployeeHandlers struct {
	Svc *service.ModerationService
}

// ListJobs pages through every posting regardless of state.
// GET /api/v1/employee/jobs.
func (h *EmployeeHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	const (
		defaultPageSize = 20
		maxPageSize     = 100
	)
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)

	jobs, err := h.Svc.ListJobs(r.Context(), limit, offset)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// History lists the moderation audit trail for a posting.
// GET /api/v1/employee/jobs/{id}/history.
func (h *EmployeeHandlers) History(w http.ResponseWriter, r *http.Request) {
	changes, err := h.Svc.History(r.Context(), r.PathValue("id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"history": changes})
}

// Processed lists the decisions the calling employee has made.
// GET /api/v1/employee/processed.
func (h *EmployeeHandlers) Processed(w http.ResponseWriter, r *http.Request) {
	employee := GetUserFromContext(r.Context())
	changes, err := h.Svc.Processed(r.Context(), employee.ID)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"history": changes})
}

// ChangeJobActive flips a posting's active flag, records the decision and
// notifies the posting's owner.
// PATCH /api/v1/employee/jobs/active.
func (h *EmployeeHandlers) ChangeJobActive(w http.ResponseWriter, r *http.Request) {
	var req model.ChangeJobActiveRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	employee := GetUserFromContext(r.Context())
	job, err := h.Svc.ChangeJobActive(r.Context(), employee, req)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"job": job})
}
