package httpx

import (
	"net/http"

	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	"github.com/jobfinder/jobfinder-api/internal/service"
)

// JobHandlers provides HTTP handlers for owner-side job management and the
// public job board.
type JobHandlers struct {
	Svc *service.JobService
}

// Create registers a new posting for the calling owner. New postings start
// inactive and only go live after moderation.
// POST /api/v1/jobs.
func (h *JobHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	owner := GetUserFromContext(r.Context())
	job, err := h.Svc.Create(r.Context(), owner.ID, req)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"job": job})
}

// ListMine lists the calling owner's postings, active or not.
// GET /api/v1/jobs.
func (h *JobHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	owner := GetUserFromContext(r.Context())
	jobs, err := h.Svc.ListMine(r.Context(), owner.ID)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// GetMine returns one of the calling owner's postings.
// GET /api/v1/jobs/{id}.
func (h *JobHandlers) GetMine(w http.ResponseWriter, r *http.Request) {
	owner := GetUserFromContext(r.Context())
	job, err := h.Svc.GetMine(r.Context(), owner.ID, r.PathValue("id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"job": job})
}

// Update applies a partial update to one of the caller's postings.
// PUT /api/v1/jobs/{id}.
func (h *JobHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	owner := GetUserFromContext(r.Context())
	job, err := h.Svc.Update(r.Context(), owner.ID, r.PathValue("id"), req)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"job": job})
}

// Delete removes one of the caller's postings.
// DELETE /api/v1/jobs/{id}.
func (h *JobHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	owner := GetUserFromContext(r.Context())
	if err := h.Svc.Delete(r.Context(), owner.ID, r.PathValue("id")); err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Board lists active, unexpired postings with optional filtering and
// sorting. Open to anonymous callers.
// GET /api/v1/board/jobs?search=&city=&category=&sortBy=&order=&limit=&offset=.
func (h *JobHandlers) Board(w http.ResponseWriter, r *http.Request) {
	const (
		defaultPageSize = 20
		maxPageSize     = 100
	)
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)

	opts := &model.JobsListOptions{
		Search:    optionalQuery(r, "search"),
		City:      optionalQuery(r, "city"),
		Category:  optionalQuery(r, "category"),
		SortBy:    r.URL.Query().Get("sortBy"),
		SortOrder: r.URL.Query().Get("order"),
		Limit:     limit,
		Offset:    offset,
	}

	jobs, err := h.Svc.ListBoard(r.Context(), opts)
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// BoardGet returns a single active posting for public viewing.
// GET /api/v1/board/jobs/{id}.
func (h *JobHandlers) BoardGet(w http.ResponseWriter, r *http.Request) {
	job, err := h.Svc.GetBoard(r.Context(), r.PathValue("id"))
	if err != nil {
		RespondError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"job": job})
}
