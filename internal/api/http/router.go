package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/metroworks/issue-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Issues         *handlers.IssuesHandler
	Photos         *handlers.PhotosHandler
	Users          *handlers.UsersHandler
	Categories     *handlers.CategoriesHandler
	IssueRateLimit fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/categories", cfg.Categories.List)
	app.Get("/users", cfg.Users.List)

	issues := app.Group("/issues")
	issues.Get("/", cfg.Issues.List)
	if cfg.IssueRateLimit != nil {
		issues.Post("/", cfg.IssueRateLimit, cfg.Issues.Create)
	} else {
		issues.Post("/", cfg.Issues.Create)
	}

	// Registered before /:id so "photos" is not captured as an issue id.
	issues.Post("/photos", cfg.Photos.Upload)
	issues.Get("/photos", cfg.Photos.List)

	issues.Get("/:id", cfg.Issues.Get)
	issues.Post("/:id/assign", cfg.Issues.Assign)
	issues.Post("/:id/status", cfg.Issues.SetStatus)
	issues.Post("/:id/comments", cfg.Issues.AddComment)
}
