package serviceimpl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/domain/services"
	"taskboard-api/pkg/apperrors"
	"taskboard-api/pkg/utils"
)

func TestRegister_DefaultsToMemberRole(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, &dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleMember, user.Role)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	req := &dto.RegisterRequest{
		Email:    "taken@example.com",
		Password: "hunter2hunter2",
		Role:     models.RoleManager,
	}

	_, err := env.auth.Register(ctx, req)
	require.NoError(t, err)

	_, err = env.auth.Register(ctx, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestLogin_TokenCarriesIdentityAndRole(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	registered, err := env.auth.Register(ctx, &dto.RegisterRequest{
		Email:    "login@example.com",
		Password: "hunter2hunter2",
		Role:     models.RoleManager,
	})
	require.NoError(t, err)

	token, user, err := env.auth.Login(ctx, &dto.LoginRequest{
		Email:    "login@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := utils.ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.ID)
	assert.Equal(t, models.RoleManager, claims.Role)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, &dto.RegisterRequest{
		Email:    "victim@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	// wrong password and unknown email both fail the same way
	_, _, err = env.auth.Login(ctx, &dto.LoginRequest{
		Email:    "victim@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = env.auth.Login(ctx, &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
