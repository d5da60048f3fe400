package services

import (
	"context"
	"errors"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService interface {
	// Register creates a user; a duplicate email is a Conflict.
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	// Login verifies credentials and returns a signed bearer token. Unknown
	// email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error)
	GenerateJWT(user *models.User) (string, error)
}
