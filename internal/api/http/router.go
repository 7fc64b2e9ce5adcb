package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/ijpettengill/jobly/internal/api/http/handlers"
	"github.com/ijpettengill/jobly/internal/auth"
	"github.com/ijpettengill/jobly/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Companies      *handlers.CompaniesHandler
	Jobs           *handlers.JobsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimit      fiber.Handler
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.Use(cfg.AuthMiddleware.Authenticate)

	authGroup := app.Group("/auth")
	if cfg.RateLimit != nil {
		authGroup.Use(cfg.RateLimit)
	}
	authGroup.Post("/token", cfg.Auth.Token)
	authGroup.Post("/register", cfg.Auth.Register)

	companies := app.Group("/companies")
	companies.Get("/", cfg.Companies.List)
	companies.Get("/:handle", cfg.Companies.Get)
	companies.Post("/", auth.RequireAdmin(), cfg.Companies.Create)
	companies.Patch("/:handle", auth.RequireAdmin(), cfg.Companies.Update)
	companies.Delete("/:handle", auth.RequireAdmin(), cfg.Companies.Remove)

	jobs := app.Group("/jobs")
	jobs.Get("/", cfg.Jobs.List)
	jobs.Get("/:id", cfg.Jobs.Get)
	jobs.Post("/", auth.RequireAdmin(), cfg.Jobs.Create)
	jobs.Patch("/:id", auth.RequireAdmin(), cfg.Jobs.Update)
	jobs.Delete("/:id", auth.RequireAdmin(), cfg.Jobs.Remove)

	users := app.Group("/users")
	users.Post("/", auth.RequireAdmin(), cfg.Users.Create)
	users.Get("/", auth.RequireAdmin(), cfg.Users.List)
	users.Get("/:username", auth.RequireAdminOrSelf("username"), cfg.Users.Get)
	users.Patch("/:username", auth.RequireAdminOrSelf("username"), cfg.Users.Update)
	users.Delete("/:username", auth.RequireAdminOrSelf("username"), cfg.Users.Remove)
	users.Post("/:username/jobs/:id", auth.RequireAdminOrSelf("username"), cfg.Users.Apply)
}
