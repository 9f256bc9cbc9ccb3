package httpx

import (
	"net/http"

	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	"github.com/jobfinder/jobfinder-api/internal/service"
)

// ApplicationHandlers provides HTTP handlers for job applications.
type ApplicationHandlers struct {
	Svc *service.ApplicationService
}

// Apply submits an application to an active posting on behalf of the
// calling seeker.
// POST /api/v1/applications.
func (h *ApplicationHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	var req model.ApplyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user := GetUserFromContext(r.Context())
	app, err := h.Svc.Apply(r.Context(), user, req)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"application": app})
}

// ListMine lists the caller's applications together with posting details.
// GET /api/v1/applications.
func (h *ApplicationHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	apps, err := h.Svc.ListMine(r.Context(), user.ID)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

// ListForJob lists applications to one of the calling owner's postings.
// GET /api/v1/jobs/{id}/applications.
func (h *ApplicationHandlers) ListForJob(w http.ResponseWriter, r *http.Request) {
	owner := GetUserFromContext(r.Context())
	apps, err := h.Svc.ListForJob(r.Context(), owner.ID, r.PathValue("id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

// UpdateStatus moves an application through the review pipeline and
// notifies the applicant.
// PATCH /api/v1/applications/{id}/status.
func (h *ApplicationHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateApplicationStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	owner := GetUserFromContext(r.Context())
	app, err := h.Svc.UpdateStatus(r.Context(), owner, r.PathValue("id"), req)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"application": app})
}
