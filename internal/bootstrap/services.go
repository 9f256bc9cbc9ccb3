package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobfinder/jobfinder-api/config"
	"github.com/jobfinder/jobfinder-api/internal/adapters/jwtcodec"
	"github.com/jobfinder/jobfinder-api/internal/adapters/password"
	redisadapter "github.com/jobfinder/jobfinder-api/internal/adapters/redis"
	"github.com/jobfinder/jobfinder-api/internal/data"
	httpx "github.com/jobfinder/jobfinder-api/internal/http"
	"github.com/jobfinder/jobfinder-api/internal/service"
	"github.com/jobfinder/jobfinder-api/internal/uploads"
)

// ServiceDeps holds the shared dependencies the service graph is built from.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds all constructed services, ready for the router.
type ServiceContainer struct {
	Auth          *service.AuthService
	Users         *service.UserService
	Jobs          *service.JobService
	Applications  *service.ApplicationService
	Notifications *service.NotificationService
	Moderation    *service.ModerationService
	Uploads       *uploads.Store
	Cookies       *httpx.TokenCookies
}

// NewServices builds the repository, adapter and service graph.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config

	codec, err := jwtcodec.New(cfg.Auth)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build token codec: %w", err)
	}

	users := data.NewUserRepo(deps.DB)
	profiles := data.NewProfileRepo(deps.DB)
	jobs := data.NewJobRepo(deps.DB)
	applications := data.NewApplicationRepo(deps.DB)
	notifications := data.NewNotificationRepo(deps.DB)
	statusChanges := data.NewStatusChangeRepo(deps.DB)

	notificationSvc := service.NewNotificationService(notifications)

	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Users:   users,
			Codec:   codec,
			Revoked: redisadapter.NewRevokedTokenStore(deps.RedisClient),
			Hasher:  password.NewBcryptHasher(bcrypt.DefaultCost),
		}),
		Users: service.NewUserService(users, profiles),
		Jobs:  service.NewJobService(jobs),
		Applications: service.NewApplicationService(service.ApplicationServiceOptions{
			Applications:  applications,
			Jobs:          jobs,
			Profiles:      profiles,
			Notifications: notificationSvc,
			Logger:        deps.Logger,
		}),
		Notifications: notificationSvc,
		Moderation: service.NewModerationService(service.ModerationServiceOptions{
			Jobs:          jobs,
			StatusChanges: statusChanges,
			Notifications: notificationSvc,
			Logger:        deps.Logger,
		}),
		Uploads: uploads.New(cfg.Uploads),
		Cookies: httpx.NewTokenCookies(cfg.Auth, cfg.IsDev),
	}, nil
}
