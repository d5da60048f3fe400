package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
)

type AuditRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) repositories.AuditRepository {
	return &AuditRepositoryImpl{db: db}
}

func (r *AuditRepositoryImpl) Add(ctx context.Context, event *models.AuditEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *AuditRepositoryImpl) TimelineForUser(ctx context.Context, userID uint, since time.Time) ([]*models.AuditEvent, error) {
	var events []*models.AuditEvent
	err := r.db.WithContext(ctx).
		Where("actor_user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}
