package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/ijpettengill/jobly/internal/api/http"
	"github.com/ijpettengill/jobly/internal/api/http/handlers"
	"github.com/ijpettengill/jobly/internal/auth"
	"github.com/ijpettengill/jobly/internal/config"
	"github.com/ijpettengill/jobly/internal/events"
	"github.com/ijpettengill/jobly/internal/observability"
	"github.com/ijpettengill/jobly/internal/persistence"
	"github.com/ijpettengill/jobly/internal/ratelimit"
	"github.com/ijpettengill/jobly/internal/repository"
	"github.com/ijpettengill/jobly/internal/service"
	"github.com/ijpettengill/jobly/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	readiness := map[string]handlers.Pinger{"postgres": pg}
	limiter, closeLimiter := newLimiter(ctx, cfg, logger, readiness)
	defer closeLimiter()

	companyRepo := repository.NewCompanyRepository(pg.Pool)
	jobRepo := repository.NewJobRepository(pg.Pool)
	userRepo := repository.NewUserRepository(pg.Pool)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(ctx, service.NewNotificationService(dispatcher, logger, cfg.Notification))

	authService := service.NewAuthService(cfg.Auth, userRepo)
	companyService := service.NewCompanyService(companyRepo, jobRepo)
	jobService := service.NewJobService(jobRepo, dispatcher, logger)
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:     userRepo,
		JobRepo:      jobRepo,
		TokenManager: authService.TokenManager(),
		BcryptCost:   cfg.Auth.BcryptCost,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readiness),
		Auth:           handlers.NewAuthHandler(authService),
		Companies:      handlers.NewCompaniesHandler(companyService),
		Jobs:           handlers.NewJobsHandler(jobService),
		Users:          handlers.NewUsersHandler(userService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), logger),
		RateLimit:      ratelimit.Middleware(limiter, logger),
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// newLimiter picks the rate limit backend. An unreachable Redis falls back to the in-process limiter.
func newLimiter(ctx context.Context, cfg *config.Config, logger *zap.Logger, readiness map[string]handlers.Pinger) (ratelimit.Limiter, func()) {
	local := ratelimit.NewLocalLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	if cfg.RateLimit.Backend != config.RateLimitBackendRedis {
		return local, func() {}
	}

	rdb, reachable := persistence.NewRedis(ctx, cfg.Redis, logger)
	readiness["redis"] = rdb
	if !reachable {
		logger.Warn("falling back to local rate limiter")
		return local, rdb.Close
	}
	return ratelimit.NewRedisLimiter(rdb.Client, cfg.App.Name+":ratelimit", cfg.RateLimit.RequestsPerMinute), rdb.Close
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
