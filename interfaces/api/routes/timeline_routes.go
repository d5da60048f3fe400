package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/interfaces/api/handlers"
	"taskboard-api/interfaces/api/middleware"
)

func SetupTimelineRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	timeline := api.Group("/timeline")
	timeline.Use(middleware.Protected(jwtSecret))

	timeline.Get("/", h.TimelineHandler.GetMyTimeline)
}
