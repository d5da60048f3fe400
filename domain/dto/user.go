package dto

import (
	"time"

	"taskboard-api/domain/models"
)

type UserResponse struct {
	ID        uint            `json:"id"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	FullName  *string         `json:"fullName"`
	CreatedAt time.Time       `json:"createdAt"`
}
