package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/eduresult/eduresult-go-api/internal/config"
	"github.com/eduresult/eduresult-go-api/internal/handler"
	"github.com/eduresult/eduresult-go-api/internal/middleware"
	"github.com/eduresult/eduresult-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	PublicHandler      *handler.PublicHandler
	StudentHandler     *handler.StudentHandler
	InstitutionHandler *handler.InstitutionHandler
	DashboardHandler   *handler.DashboardHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Public portal: auth plus the rate-limited roll-number lookup.
	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}
	if deps.PublicHandler != nil {
		lookupLimit := middleware.RateLimit("public-lookup", cfg.PublicLookupRateLimit, time.Minute)
		deps.PublicHandler.Register(api.Group("", lookupLimit))
	}

	// Admin surface.
	if deps.StudentHandler != nil {
		students := app.Group("/api/v2/students", jwtMiddleware)
		deps.StudentHandler.Register(students)
	}
	if deps.InstitutionHandler != nil {
		institution := app.Group("/api/v2/institution", jwtMiddleware)
		deps.InstitutionHandler.Register(institution)
	}
	if deps.DashboardHandler != nil {
		admin := app.Group("/api/v2", jwtMiddleware)
		deps.DashboardHandler.Register(admin)
	}
}
