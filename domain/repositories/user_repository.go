package repositories

import (
	"context"

	"taskboard-api/domain/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// Lookups return (nil, nil) when no row matches.
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ExistAll reports whether every id resolves to a user, returning the
	// first missing id when not.
	ExistAll(ctx context.Context, ids []uint) (missing uint, ok bool, err error)
}
