package services

import (
	"context"
	"time"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
)

// Caller is the resolved identity the auth boundary hands to the core. The
// core never sees the credential itself.
type Caller struct {
	UserID uint
	Role   models.UserRole
}

type TaskService interface {
	CreateTask(ctx context.Context, caller Caller, req *dto.CreateTaskRequest) (*models.Task, error)
	GetTask(ctx context.Context, caller Caller, taskID uint) (*models.Task, error)
	UpdateTask(ctx context.Context, caller Caller, taskID uint, patch *dto.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, caller Caller, taskID uint) error
	// BulkUpdate applies the ordered patches as one atomic unit; the first
	// missing or forbidden task aborts the whole batch.
	BulkUpdate(ctx context.Context, caller Caller, updates []dto.BulkTaskUpdateItem) ([]uint, error)
	SetDependencies(ctx context.Context, caller Caller, taskID uint, dependsOnIDs []uint) (*models.Task, error)
	ArchiveTask(ctx context.Context, caller Caller, taskID uint) (*models.Task, error)
	FilterTasks(ctx context.Context, caller Caller, f *dto.TaskFilterRequest) ([]*models.Task, int64, error)
	AnalyticsDistribution(ctx context.Context, today time.Time) ([]repositories.AssigneeTaskCounts, error)
}
