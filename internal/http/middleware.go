package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"time"

	domainauth "github.com/jobfinder/jobfinder-api/internal/domain/auth"
	"github.com/jobfinder/jobfinder-api/internal/domain/model"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CORS returns a middleware that answers cross-origin requests for the
// configured origins. Credentials are always allowed since the frontend
// authenticates with cookies.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if _, ok := allowed[origin]; ok {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")
				if r.Method == http.MethodOptions {
					h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
					h.Set("Access-Control-Allow-Headers", "Content-Type")
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// identityParams groups the dependencies the identity middleware needs.
type identityParams struct {
	Svc     AuthServiceInterface
	Cookies *TokenCookies
}

// RequireAuth returns a middleware that resolves the caller from the access
// token cookie. A missing or unverifiable cookie short-circuits to 401
// without touching the auth service.
func RequireAuth(svc AuthServiceInterface, cookies *TokenCookies) func(http.Handler) http.Handler {
	p := identityParams{Svc: svc, Cookies: cookies}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolveUser(r, p)
			if err != nil {
				RespondError(w, err)
				return
			}
			ctx := SetUserInContext(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware that requires one of the given roles.
// Callers with a valid token but the wrong role get a 403.
func RequireRole(svc AuthServiceInterface, cookies *TokenCookies, roles ...domainauth.Role) func(http.Handler) http.Handler {
	p := identityParams{Svc: svc, Cookies: cookies}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolveUser(r, p)
			if err != nil {
				RespondError(w, err)
				return
			}
			if !slices.Contains(roles, user.Role) {
				RespondError(w, apperrors.Forbidden("You do not have permission to perform this action."))
				return
			}
			ctx := SetUserInContext(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns a middleware that attaches the caller when a valid
// access token is present and continues anonymously otherwise.
func OptionalAuth(svc AuthServiceInterface, cookies *TokenCookies) func(http.Handler) http.Handler {
	p := identityParams{Svc: svc, Cookies: cookies}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, err := resolveUser(r, p); err == nil {
				r = r.WithContext(SetUserInContext(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveUser(r *http.Request, p identityParams) (*model.User, error) {
	token, ok := p.Cookies.Access(r)
	if !ok {
		return nil, apperrors.Unauthorized("Please log in to your account.")
	}
	return p.Svc.ResolveAccessToken(r.Context(), token)
}
