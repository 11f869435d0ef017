package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers the health, metrics and /api routes
func SetupRoutes(app *fiber.App, h *Handler) {
	if h.Metrics != nil {
		app.Use(h.Metrics.Middleware())
		app.Get("/metrics", h.Metrics.Handler())
	}
	app.Get("/health", h.Health)

	api := app.Group("/api")

	// ===== Public Routes (No Auth Required) =====
	api.Post("/login", h.Login)

	// ===== Protected Routes (JWT Required) =====
	protected := api.Group("", h.JWTAuthMiddleware())

	// Auth
	protected.Get("/auth/verify", h.VerifyToken)
	protected.Post("/auth/logout", h.Logout)
	protected.Put("/auth/password", h.ChangePassword)

	// Groups ("businesses" on the wire)
	protected.Get("/businesses", h.GetGroups)
	protected.Post("/businesses", h.CreateGroup)
	protected.Get("/businesses/:id", h.GetGroup)
	protected.Put("/businesses/:id", h.UpdateGroup)
	protected.Delete("/businesses/:id", h.DeleteGroup)
	protected.Get("/businesses/:id/export", h.ExportRoster)

	// Targets
	protected.Get("/businesses/:id/targets", h.GetTargets)
	protected.Post("/businesses/:id/targets", h.CreateTarget)
	protected.Get("/businesses/:id/targets/search", h.SearchTargets)
	protected.Get("/businesses/:id/targets/:targetId", h.GetTarget)
	protected.Put("/businesses/:id/targets/:targetId", h.UpdateTarget)
	protected.Delete("/businesses/:id/targets/:targetId", h.DeleteTarget)

	// Activity
	protected.Get("/events", h.GetEvents)
	protected.Post("/webhook/test", h.TestWebhook)
}
