package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobfinder/jobfinder-api/config"
	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	"github.com/jobfinder/jobfinder-api/internal/mocks"
	"github.com/jobfinder/jobfinder-api/internal/service"
	"github.com/jobfinder/jobfinder-api/internal/uploads"
)

type routerFixture struct {
	handler http.Handler
	auth    *stubAuthService
	cookies *TokenCookies
	jobs    *mocks.MockJobRepository
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &routerFixture{
		auth:    &stubAuthService{},
		cookies: devCookies(),
		jobs:    mocks.NewMockJobRepository(ctrl),
	}
	f.handler = NewRouter(RouterServices{
		Auth:          f.auth,
		Users:         service.NewUserService(mocks.NewMockUserRepository(ctrl), mocks.NewMockProfileRepository(ctrl)),
		Jobs:          service.NewJobService(f.jobs),
		Applications:  service.NewApplicationService(service.ApplicationServiceOptions{}),
		Notifications: service.NewNotificationService(mocks.NewMockNotificationRepository(ctrl)),
		Moderation:    service.NewModerationService(service.ModerationServiceOptions{}),
		Uploads:       uploads.New(config.UploadsConfig{Dir: t.TempDir(), MaxSizeBytes: 1024}),
		Cookies:       f.cookies,
		HTTP:          config.HTTPConfig{CORSOrigins: []string{"http://localhost:3000"}},
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return f
}

func (f *routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_PublicBoardIsAnonymous(t *testing.T) {
	f := newRouterFixture(t)
	f.jobs.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return([]*model.Job{{ID: "job-1"}}, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/board/jobs", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "job-1")
}

func TestRouter_OwnerRoutesGuarded(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("anonymous", func(t *testing.T) {
		rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("seeker is not an owner", func(t *testing.T) {
		f.auth.user = &model.User{ID: "user-1", Role: domainauth.RoleUser}
		req := requestWithCookies(t, f.cookies, testPair())
		req.URL.Path = "/api/v1/jobs"
		rec := f.do(req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("owner lists own postings", func(t *testing.T) {
		f.auth.user = &model.User{ID: "owner-1", Role: domainauth.RoleOwner}
		f.jobs.EXPECT().ListByOwner(gomock.Any(), "owner-1").Return([]*model.Job{}, nil)

		req := requestWithCookies(t, f.cookies, testPair())
		req.URL.Path = "/api/v1/jobs"
		rec := f.do(req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_CORS(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/board/jobs", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := f.do(req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin gets no CORS headers", func(t *testing.T) {
		f.jobs.EXPECT().ListActive(gomock.Any(), gomock.Any()).Return(nil, nil)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/board/jobs", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := f.do(req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRouter_EmployeeRoutesGuarded(t *testing.T) {
	f := newRouterFixture(t)
	f.auth.user = &model.User{ID: "owner-1", Role: domainauth.RoleOwner}

	req := requestWithCookies(t, f.cookies, testPair())
	req.URL.Path = "/api/v1/employee/jobs"
	rec := f.do(req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
