package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-capture-service/internal/api/http/handlers"
	"github.com/spec-kit/lead-capture-service/internal/auth"
	"github.com/spec-kit/lead-capture-service/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Courses        *handlers.CoursesHandler
	Leads          *handlers.LeadsHandler
	Auth           *handlers.AuthHandler
	AdminLeads     *handlers.AdminLeadsHandler
	AuthMiddleware *auth.AuthMiddleware
	CSRF           *CSRF
	LoginLimiter   *ratelimit.Limiter
	LeadLimiter    *ratelimit.Limiter
	Logger         *zap.Logger
}

// RegisterRoutes wires HTTP routes. Limiters run before validation and
// persistence so abusive traffic never reaches the store.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Get("/courses", cfg.Courses.List)
	api.Get("/courses/:id", cfg.Courses.Get)
	api.Post("/leads", ratelimit.Middleware(cfg.LeadLimiter, cfg.Logger), cfg.Leads.Create)
	api.Get("/csrf-token", cfg.CSRF.Issue)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", ratelimit.Middleware(cfg.LoginLimiter, cfg.Logger), cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)
	authGroup.Post("/logout", cfg.Auth.Logout)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/leads", cfg.AdminLeads.List)
	admin.Get("/leads/:id", cfg.AdminLeads.Get)
	admin.Get("/stats", cfg.AdminLeads.Stats)
	admin.Get("/stats/sources", cfg.AdminLeads.StatsBySource)
	admin.Patch("/leads/:id/status", cfg.CSRF.Protect, cfg.AdminLeads.UpdateStatus)
	admin.Delete("/leads/:id", cfg.CSRF.Protect, cfg.AdminLeads.Delete)
}
