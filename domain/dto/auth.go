package dto

import (
	"taskboard-api/domain/models"
)

type RegisterRequest struct {
	Email    string          `json:"email" validate:"required,email,max=320"`
	Password string          `json:"password" validate:"required,min=8,max=128"`
	Role     models.UserRole `json:"role" validate:"omitempty,oneof=ADMIN MANAGER MEMBER"`
	FullName *string         `json:"fullName" validate:"omitempty,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}
