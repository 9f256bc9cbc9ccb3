package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobfinder/jobfinder-api/config"
	"github.com/jobfinder/jobfinder-api/internal/adapters/jwtcodec"
	authmocks "github.com/jobfinder/jobfinder-api/internal/mocks/auth"
	"github.com/jobfinder/jobfinder-api/internal/service"
)

func newAuthHandlers(t *testing.T) *AuthHandlers {
	t.Helper()
	codec, err := jwtcodec.New(config.AuthConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	})
	require.NoError(t, err)

	svc := service.NewAuthService(service.AuthServiceOptions{
		Users:   authmocks.NewMemoryUserRepo(),
		Codec:   codec,
		Revoked: authmocks.NewMemoryRevokedTokenStore(),
		Hasher:  authmocks.PlainHasher{},
	})
	return &AuthHandlers{Svc: svc, Cookies: devCookies()}
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

const signupBody = `{"fullName":"jane doe","email":"jane@example.com","password":"long enough","role":"USER"}`

func TestAuthHandlers_Signup(t *testing.T) {
	h := newAuthHandlers(t)

	rec := httptest.NewRecorder()
	h.Signup(rec, postJSON("/api/v1/auth/signup", signupBody))

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		User struct {
			ID       string `json:"id"`
			FullName string `json:"fullName"`
			IsActive bool   `json:"isActive"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.User.ID)
	assert.Equal(t, "jane doe", body.User.FullName)
	assert.False(t, body.User.IsActive)
	assert.NotContains(t, rec.Body.String(), "long enough", "password never echoed")

	require.NotNil(t, cookieByName(t, rec, accessCookieName))
	require.NotNil(t, cookieByName(t, rec, refreshCookieName))

	t.Run("duplicate name conflicts", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Signup(rec, postJSON("/api/v1/auth/signup",
			`{"fullName":"jane doe","email":"other@example.com","password":"long enough"}`))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Signup(rec, postJSON("/api/v1/auth/signup", `{"fullName":"x","admin":true}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandlers_Signin(t *testing.T) {
	h := newAuthHandlers(t)
	rec := httptest.NewRecorder()
	h.Signup(rec, postJSON("/api/v1/auth/signup", signupBody))
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("success sets cookies", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Signin(rec, postJSON("/api/v1/auth/signin", `{"fullName":"jane doe","password":"long enough"}`))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, cookieByName(t, rec, accessCookieName))
	})

	t.Run("wrong password leaves no cookies", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Signin(rec, postJSON("/api/v1/auth/signin", `{"fullName":"jane doe","password":"nope nope"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
		assert.Contains(t, rec.Body.String(), "Invalid fullName or password")
	})

	t.Run("unknown account shares the same error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Signin(rec, postJSON("/api/v1/auth/signin", `{"fullName":"nobody","password":"whatever"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid fullName or password")
	})
}

// signedUpRequest returns a request carrying the cookies a signup issued.
func signedUpRequest(t *testing.T, h *AuthHandlers, path string) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Signup(rec, postJSON("/api/v1/auth/signup", signupBody))
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodPost, path, nil)
	for _, ck := range rec.Result().Cookies() {
		req.AddCookie(ck)
	}
	return req
}

func TestAuthHandlers_Refresh(t *testing.T) {
	h := newAuthHandlers(t)
	req := signedUpRequest(t, h, "/api/v1/auth/refresh")
	oldRefresh, err := req.Cookie(refreshCookieName)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Refresh(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	fresh := cookieByName(t, rec, refreshCookieName)
	require.NotNil(t, fresh)
	assert.NotEqual(t, oldRefresh.Value, fresh.Value, "refresh token must rotate")

	t.Run("replaying the consumed token fails", func(t *testing.T) {
		rec := httptest.NewRecorder()
		replay := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
		replay.AddCookie(oldRefresh)
		h.Refresh(rec, replay)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Refresh(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Please log in to your account.", errorMessage(t, rec))
	})
}

func TestAuthHandlers_Logout(t *testing.T) {
	h := newAuthHandlers(t)
	req := signedUpRequest(t, h, "/api/v1/auth/logout")
	refreshCookie, err := req.Cookie(refreshCookieName)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Logout(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, ck := range rec.Result().Cookies() {
		assert.Equal(t, -1, ck.MaxAge, "cookie %s must be expired", ck.Name)
	}

	t.Run("revoked refresh token is dead", func(t *testing.T) {
		rec := httptest.NewRecorder()
		replay := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
		replay.AddCookie(refreshCookie)
		h.Refresh(rec, replay)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("anonymous logout still succeeds", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
