package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
)

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperrors.Validation("bad input"), http.StatusBadRequest},
		{"unauthorized", apperrors.Unauthorized("log in"), http.StatusUnauthorized},
		{"forbidden", apperrors.Forbidden("nope"), http.StatusForbidden},
		{"not found", apperrors.NotFound("gone"), http.StatusNotFound},
		{"conflict", apperrors.Conflict("dup"), http.StatusConflict},
		{"foreign key", apperrors.ForeignKey("dangling"), http.StatusConflict},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(rec, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRespondError_HidesInternalCauses(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, errors.New("pq: connection refused to 10.0.0.5"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}

func TestRespondError_IncludesField(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, apperrors.ValidationField("email", "email is taken"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"email"`)
}
