package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/interfaces/api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, jwtSecret string) {
	SetupHealthRoutes(app)

	api := app.Group("/api/v1")

	SetupAuthRoutes(api, h)
	SetupTaskRoutes(api, h, jwtSecret)
	SetupTimelineRoutes(api, h, jwtSecret)
	SetupAnalyticsRoutes(api, h, jwtSecret)
}
