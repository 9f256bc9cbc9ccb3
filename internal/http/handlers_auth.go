package httpx

import (
	"context"
	"net/http"

	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
	"github.com/jobfinder/jobfinder-api/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Signup(ctx context.Context, req model.SignupRequest) (*service.AuthResult, error)
	Signin(ctx context.Context, req model.SigninRequest) (*service.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*service.AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	ResolveAccessToken(ctx context.Context, accessToken string) (*model.User, error)
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc     AuthServiceInterface
	Cookies *TokenCookies
}

// Signup handles account registration.
// POST /api/v1/auth/signup.
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.Signup(r.Context(), req)
	if err != nil {
		RespondError(w, err)
		return
	}

	h.Cookies.SetPair(w, res.Tokens)
	WriteJSON(w, http.StatusCreated, map[string]any{"user": res.User.Sanitized()})
}

// Signin handles credential login.
// POST /api/v1/auth/signin.
func (h *AuthHandlers) Signin(w http.ResponseWriter, r *http.Request) {
	var req model.SigninRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.Signin(r.Context(), req)
	if err != nil {
		RespondError(w, err)
		return
	}

	h.Cookies.SetPair(w, res.Tokens)
	WriteJSON(w, http.StatusOK, map[string]any{"user": res.User.Sanitized()})
}

// Refresh rotates the refresh token and reissues both cookies.
// POST /api/v1/auth/refresh.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	token, ok := h.Cookies.Refresh(r)
	if !ok {
		RespondError(w, apperrors.Unauthorized("Please log in to your account."))
		return
	}

	res, err := h.Svc.Refresh(r.Context(), token)
	if err != nil {
		RespondError(w, err)
		return
	}

	h.Cookies.SetPair(w, res.Tokens)
	WriteJSON(w, http.StatusOK, map[string]any{"user": res.User.Sanitized()})
}

// Logout revokes the refresh token and clears both cookies. A missing or
// unreadable cookie still clears client state and succeeds.
// POST /api/v1/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := h.Cookies.Refresh(r)
	if err := h.Svc.Logout(r.Context(), token); err != nil {
		RespondError(w, err)
		return
	}

	h.Cookies.Clear(w)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
