package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/pkg/apperrors"
)

func TestTimeline_WindowBounds(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "user@example.com", models.RoleMember)

	for _, days := range []int{0, -3, 91} {
		_, err := env.timeline.ForUser(ctx, user.ID, days)
		require.Error(t, err, "days=%d must be rejected", days)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	}

	_, err := env.timeline.ForUser(ctx, user.ID, 90)
	require.NoError(t, err)
}

func TestTimeline_OwnActionsNewestFirst(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	actor := env.seedUser(t, "actor@example.com", models.RoleManager)
	other := env.seedUser(t, "other@example.com", models.RoleManager)

	task, err := env.tasks.CreateTask(ctx, asCaller(actor), &dto.CreateTaskRequest{Title: "traced"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = env.tasks.UpdateTask(ctx, asCaller(actor), task.ID, &dto.UpdateTaskRequest{
		Status: statusPtr(models.StatusInProgress),
	})
	require.NoError(t, err)

	// another actor's event must not show up in this user's timeline
	_, err = env.tasks.CreateTask(ctx, asCaller(other), &dto.CreateTaskRequest{Title: "noise"})
	require.NoError(t, err)

	events, err := env.timeline.ForUser(ctx, actor.ID, 7)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, models.AuditActionUpdated, events[0].Action)
	assert.Equal(t, models.AuditActionCreated, events[1].Action)
	require.NotNil(t, events[1].Details)
	assert.Equal(t, "title=traced", *events[1].Details)

	for _, e := range events {
		assert.Equal(t, actor.ID, e.ActorUserID)
		assert.Equal(t, task.ID, e.EntityID)
	}
}
