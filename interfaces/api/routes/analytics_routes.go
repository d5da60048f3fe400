package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/interfaces/api/handlers"
	"taskboard-api/interfaces/api/middleware"
)

func SetupAnalyticsRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	analytics := api.Group("/analytics")
	analytics.Use(middleware.Protected(jwtSecret))

	analytics.Get("/task-distribution", h.AnalyticsHandler.GetTaskDistribution)
	analytics.Get("/overdue", h.AnalyticsHandler.GetTaskDistribution)
}
