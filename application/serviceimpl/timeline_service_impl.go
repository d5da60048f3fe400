package serviceimpl

import (
	"context"
	"time"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/apperrors"
)

const (
	timelineMinDays = 1
	timelineMaxDays = 90
)

type TimelineServiceImpl struct {
	auditRepo repositories.AuditRepository
}

func NewTimelineService(auditRepo repositories.AuditRepository) services.TimelineService {
	return &TimelineServiceImpl{auditRepo: auditRepo}
}

func (s *TimelineServiceImpl) ForUser(ctx context.Context, userID uint, days int) ([]*models.AuditEvent, error) {
	if days < timelineMinDays || days > timelineMaxDays {
		return nil, apperrors.Validation("days must be between %d and %d", timelineMinDays, timelineMaxDays)
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.auditRepo.TimelineForUser(ctx, userID, since)
}
