package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/utils"
)

type AnalyticsHandler struct {
	taskService services.TaskService
}

func NewAnalyticsHandler(taskService services.TaskService) *AnalyticsHandler {
	return &AnalyticsHandler{
		taskService: taskService,
	}
}

// GetTaskDistribution returns per-assignee open and overdue counts.
func (h *AnalyticsHandler) GetTaskDistribution(c *fiber.Ctx) error {
	ctx := c.UserContext()

	rows, err := h.taskService.AnalyticsDistribution(ctx, time.Now().UTC())
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	items := make([]dto.AnalyticsDistributionItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.AnalyticsDistributionItem{
			UserID:       row.UserID,
			OpenTasks:    row.OpenTasks,
			OverdueTasks: row.OverdueTasks,
		})
	}

	return utils.SuccessResponse(c, items)
}
