package dto

import (
	"time"
)

type AuditEventResponse struct {
	ID          uint      `json:"id"`
	ActorUserID uint      `json:"actorUserId"`
	EntityType  string    `json:"entityType"`
	EntityID    uint      `json:"entityId"`
	Action      string    `json:"action"`
	Details     *string   `json:"details"`
	CreatedAt   time.Time `json:"createdAt"`
}
