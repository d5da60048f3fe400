package services

import (
	"context"

	"taskboard-api/domain/models"
)

type TimelineService interface {
	// ForUser returns the user's audit events within the lookback window
	// (1..90 days), newest first.
	ForUser(ctx context.Context, userID uint, days int) ([]*models.AuditEvent, error)
}
