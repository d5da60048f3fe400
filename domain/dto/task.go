package dto

import (
	"time"

	"taskboard-api/domain/models"
)

type TaskUserLinkIn struct {
	UserID uint                `json:"userId" validate:"required"`
	Role   models.TaskUserRole `json:"role" validate:"required,oneof=ASSIGNEE COLLABORATOR"`
}

type CreateTaskRequest struct {
	Title        string              `json:"title" validate:"required,min=1,max=200"`
	Description  *string             `json:"description"`
	Status       models.TaskStatus   `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE BLOCKED"`
	Priority     models.TaskPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	DueDate      *time.Time          `json:"dueDate"`
	ParentTaskID *uint               `json:"parentTaskId"`

	Users []TaskUserLinkIn `json:"users" validate:"dive"`
	Tags  []string         `json:"tags"`
}

// UpdateTaskRequest carries partial-update semantics: nil means the field is
// absent from the patch and must not be touched.
type UpdateTaskRequest struct {
	Title       *string              `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string              `json:"description"`
	Status      *models.TaskStatus   `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE BLOCKED"`
	Priority    *models.TaskPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	DueDate     *time.Time           `json:"dueDate"`
	IsArchived  *bool                `json:"isArchived"`
}

type BulkTaskUpdateItem struct {
	ID    uint              `json:"id" validate:"required"`
	Patch UpdateTaskRequest `json:"patch"`
}

type BulkTaskUpdateRequest struct {
	Updates []BulkTaskUpdateItem `json:"updates" validate:"required,dive"`
}

type BulkTaskUpdateResult struct {
	UpdatedIDs []uint `json:"updatedIds"`
}

type DependencyUpsertRequest struct {
	DependsOnTaskIDs []uint `json:"dependsOnTaskIds"`
}

type TaskFilterRequest struct {
	Logic               string                `json:"logic" validate:"omitempty,oneof=AND OR"`
	StatusIn            []models.TaskStatus   `json:"statusIn" validate:"omitempty,dive,oneof=TODO IN_PROGRESS DONE BLOCKED"`
	PriorityIn          []models.TaskPriority `json:"priorityIn" validate:"omitempty,dive,oneof=LOW MEDIUM HIGH CRITICAL"`
	AssigneeUserIDs     []uint                `json:"assigneeUserIds"`
	CollaboratorUserIDs []uint                `json:"collaboratorUserIds"`
	TagNames            []string              `json:"tagNames"`
	DueDateFrom         *time.Time            `json:"dueDateFrom"`
	DueDateTo           *time.Time            `json:"dueDateTo"`
	CreatedFrom         *time.Time            `json:"createdFrom"`
	CreatedTo           *time.Time            `json:"createdTo"`
	IncludeArchived     bool                  `json:"includeArchived"`

	Page     int `json:"page" validate:"omitempty,min=1"`
	PageSize int `json:"pageSize" validate:"omitempty,min=1,max=100"`
}

type TaskResponse struct {
	ID              uint                `json:"id"`
	Title           string              `json:"title"`
	Description     *string             `json:"description"`
	Status          models.TaskStatus   `json:"status"`
	Priority        models.TaskPriority `json:"priority"`
	DueDate         *time.Time          `json:"dueDate"`
	IsArchived      bool                `json:"isArchived"`
	ParentTaskID    *uint               `json:"parentTaskId"`
	CreatedByUserID uint                `json:"createdByUserId"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`

	Assignees     []uint   `json:"assignees"`
	Collaborators []uint   `json:"collaborators"`
	Tags          []string `json:"tags"`
	Dependencies  []uint   `json:"dependencies"`
}

type TaskFilterResponse struct {
	Items    []TaskResponse `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int64          `json:"total"`
}

type AnalyticsDistributionItem struct {
	UserID       uint  `json:"userId"`
	OpenTasks    int64 `json:"openTasks"`
	OverdueTasks int64 `json:"overdueTasks"`
}
