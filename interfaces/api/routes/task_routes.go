package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/interfaces/api/handlers"
	"taskboard-api/interfaces/api/middleware"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers, jwtSecret string) {
	tasks := api.Group("/tasks")
	tasks.Use(middleware.Protected(jwtSecret))

	tasks.Post("/", h.TaskHandler.CreateTask)

	// literal segments must register before the :id routes
	tasks.Patch("/bulk", h.TaskHandler.BulkUpdateTasks)
	tasks.Post("/filter", h.TaskHandler.FilterTasks)

	tasks.Get("/:id", h.TaskHandler.GetTask)
	tasks.Patch("/:id", h.TaskHandler.UpdateTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
	tasks.Post("/:id/dependencies", h.TaskHandler.SetDependencies)
	tasks.Patch("/:id/archive", h.TaskHandler.ArchiveTask)
}
