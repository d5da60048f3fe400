package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/utils"
)

type TimelineHandler struct {
	timelineService services.TimelineService
}

func NewTimelineHandler(timelineService services.TimelineService) *TimelineHandler {
	return &TimelineHandler{
		timelineService: timelineService,
	}
}

// GetMyTimeline returns the caller's own audit trail for the lookback window
// given by the days query parameter (default 7).
func (h *TimelineHandler) GetMyTimeline(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	days := c.QueryInt("days", 7)

	events, err := h.timelineService.ForUser(ctx, user.ID, days)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	items := make([]dto.AuditEventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, *dto.AuditEventToResponse(e))
	}

	return utils.SuccessResponse(c, items)
}
