package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/retail-kit/backoffice-console/internal/api/http/handlers"
	"github.com/retail-kit/backoffice-console/internal/auth"
	"github.com/retail-kit/backoffice-console/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Session *handlers.SessionHandler
	Staff   *handlers.StaffHandler
	App     *handlers.AppHandler
	Guard   *auth.Guard
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/login", cfg.App.LoginPage)
	app.Post("/login", cfg.Session.Login)
	app.Post("/logout", cfg.Session.Logout)

	app.Get("/session", cfg.Session.Current)
	app.Post("/session/recheck", cfg.Session.Recheck)
	app.Get("/session/updates", cfg.Session.Updates)

	app.Get("/app", cfg.Guard.Protect(), cfg.App.Home)
	app.Get("/app/staff", cfg.Guard.Protect(domain.RoleAdmin), cfg.App.StaffPage)

	api := app.Group("/api/staff", cfg.Guard.Protect(domain.RoleAdmin))
	api.Get("/", cfg.Staff.List)
	api.Post("/", cfg.Staff.Create)
	api.Post("/:id/roles", cfg.Staff.AssignRole)
	api.Post("/:id/password", cfg.Staff.ResetPassword)
	api.Post("/:id/disable", cfg.Staff.Disable)
}
