package httpx

import (
	"log/slog"
	"net/http"

	"github.com/jobfinder/jobfinder-api/config"
	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
	"github.com/jobfinder/jobfinder-api/internal/service"
	"github.com/jobfinder/jobfinder-api/internal/uploads"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth          AuthServiceInterface
	Users         *service.UserService
	Jobs          *service.JobService
	Applications  *service.ApplicationService
	Notifications *service.NotificationService
	Moderation    *service.ModerationService
	Uploads       *uploads.Store
	Cookies       *TokenCookies
	HTTP          config.HTTPConfig
	Logger        *slog.Logger
}

// NewRouter creates and configures the API router with its middleware chain.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	registerAuthRoutes(mux, &AuthHandlers{Svc: services.Auth, Cookies: services.Cookies})
	registerUserRoutes(mux, &UserHandlers{Svc: services.Users, Uploads: services.Uploads}, services)
	registerJobRoutes(mux, &JobHandlers{Svc: services.Jobs}, services)
	registerApplicationRoutes(mux, &ApplicationHandlers{Svc: services.Applications}, services)
	registerNotificationRoutes(mux, &NotificationHandlers{Svc: services.Notifications}, services)
	registerEmployeeRoutes(mux, &EmployeeHandlers{Svc: services.Moderation}, services)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	// Stored resumes and logos are served as-is; paths are UUID-named.
	mux.Handle("GET /uploads/",
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(services.Uploads.Dir()))))

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var handler http.Handler = mux
	handler = CORS(services.HTTP.CORSOrigins)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

// authed wraps a handler so only logged-in callers reach it.
func (s RouterServices) authed(h http.HandlerFunc) http.Handler {
	return RequireAuth(s.Auth, s.Cookies)(h)
}

// roled wraps a handler so only callers holding one of the roles reach it.
func (s RouterServices) roled(h http.HandlerFunc, roles ...domainauth.Role) http.Handler {
	return RequireRole(s.Auth, s.Cookies, roles...)(h)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /api/v1/auth/signup", h.Signup)
	mux.HandleFunc("POST /api/v1/auth/signin", h.Signin)
	mux.HandleFunc("POST /api/v1/auth/refresh", h.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Logout)
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, s RouterServices) {
	mux.Handle("GET /api/v1/users/me", s.authed(h.Me))
	mux.Handle("POST /api/v1/users/profile", s.authed(h.CompleteProfile))
	mux.Handle("PATCH /api/v1/users/profile", s.authed(h.UpdateProfile))
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers, s RouterServices) {
	mux.Handle("POST /api/v1/jobs", s.roled(h.Create, domainauth.RoleOwner))
	mux.Handle("GET /api/v1/jobs", s.roled(h.ListMine, domainauth.RoleOwner))
	mux.Handle("GET /api/v1/jobs/{id}", s.roled(h.GetMine, domainauth.RoleOwner))
	mux.Handle("PUT /api/v1/jobs/{id}", s.roled(h.Update, domainauth.RoleOwner))
	mux.Handle("DELETE /api/v1/jobs/{id}", s.roled(h.Delete, domainauth.RoleOwner))

	// Public board: anonymous browsing of live postings. OptionalAuth lets
	// logged-in seekers see the board with their identity attached.
	public := OptionalAuth(s.Auth, s.Cookies)
	mux.Handle("GET /api/v1/board/jobs", public(http.HandlerFunc(h.Board)))
	mux.Handle("GET /api/v1/board/jobs/{id}", public(http.HandlerFunc(h.BoardGet)))
}

func registerApplicationRoutes(mux *http.ServeMux, h *ApplicationHandlers, s RouterServices) {
	mux.Handle("POST /api/v1/applications", s.roled(h.Apply, domainauth.RoleUser))
	mux.Handle("GET /api/v1/applications", s.roled(h.ListMine, domainauth.RoleUser))
	mux.Handle("GET /api/v1/jobs/{id}/applications", s.roled(h.ListForJob, domainauth.RoleOwner))
	mux.Handle("PATCH /api/v1/applications/{id}/status", s.roled(h.UpdateStatus, domainauth.RoleOwner))
}

func registerNotificationRoutes(mux *http.ServeMux, h *NotificationHandlers, s RouterServices) {
	mux.Handle("POST /api/v1/notifications", s.authed(h.Send))
	mux.Handle("GET /api/v1/notifications", s.authed(h.ListMine))
	mux.Handle("GET /api/v1/notifications/unread-count", s.authed(h.UnreadCount))
	mux.Handle("PATCH /api/v1/notifications/{id}/read", s.authed(h.MarkRead))
}

func registerEmployeeRoutes(mux *http.ServeMux, h *EmployeeHandlers, s RouterServices) {
	staff := []domainauth.Role{domainauth.RoleEmployee, domainauth.RoleAdmin}
	mux.Handle("GET /api/v1/employee/jobs", s.roled(h.ListJobs, staff...))
	mux.Handle("GET /api/v1/employee/jobs/{id}/history", s.roled(h.History, staff...))
	mux.Handle("GET /api/v1/employee/processed", s.roled(h.Processed, staff...))
	mux.Handle("PATCH /api/v1/employee/jobs/active", s.roled(h.ChangeJobActive, staff...))
}
