package repositories

import (
	"context"
	"time"

	"taskboard-api/domain/models"
)

type AuditRepository interface {
	Add(ctx context.Context, event *models.AuditEvent) error
	// TimelineForUser returns the user's events with created_at >= since,
	// newest first.
	TimelineForUser(ctx context.Context, userID uint, since time.Time) ([]*models.AuditEvent, error)
}
