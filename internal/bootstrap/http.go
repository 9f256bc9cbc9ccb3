package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jobfinder/jobfinder-api/config"
	httpx "github.com/jobfinder/jobfinder-api/internal/http"
)

const shutdownTimeout = 10 * time.Second

// HTTPServerConfig contains what RunHTTPServer needs.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunHTTPServer starts the API server and blocks until SIGINT/SIGTERM or a
// listener failure, then drains in-flight requests.
func RunHTTPServer(ctx context.Context, cfg HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Auth:          cfg.Services.Auth,
		Users:         cfg.Services.Users,
		Jobs:          cfg.Services.Jobs,
		Applications:  cfg.Services.Applications,
		Notifications: cfg.Services.Notifications,
		Moderation:    cfg.Services.Moderation,
		Uploads:       cfg.Services.Uploads,
		Cookies:       cfg.Services.Cookies,
		HTTP:          cfg.Config.HTTP,
		Logger:        logger,
	})

	addr := cfg.Config.HTTP.Addr
	if addr == "" {
		addr = ":5000"
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}
