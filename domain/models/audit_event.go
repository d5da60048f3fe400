package models

import (
	"time"
)

// AuditEvent is append-only. Rows are never updated or deleted; the timeline
// reader only ever selects from this table.
type AuditEvent struct {
	ID          uint    `gorm:"primaryKey"`
	ActorUserID uint    `gorm:"not null;index"`
	EntityType  string  `gorm:"size:50;not null;index"`
	EntityID    uint    `gorm:"not null;index"`
	Action      string  `gorm:"size:50;not null;index"`
	Details     *string `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"index"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
