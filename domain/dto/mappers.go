package dto

import (
	"taskboard-api/domain/models"
)

func UserToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}
}

// TaskToTaskResponse flattens the loaded relation sets into id/name lists.
func TaskToTaskResponse(task *models.Task) *TaskResponse {
	return &TaskResponse{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		Status:          task.Status,
		Priority:        task.Priority,
		DueDate:         task.DueDate,
		IsArchived:      task.IsArchived,
		ParentTaskID:    task.ParentTaskID,
		CreatedByUserID: task.CreatedByUserID,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
		Assignees:       task.UserIDsWithRole(models.LinkRoleAssignee),
		Collaborators:   task.UserIDsWithRole(models.LinkRoleCollaborator),
		Tags:            task.TagNames(),
		Dependencies:    task.DependencyIDs(),
	}
}

func AuditEventToResponse(e *models.AuditEvent) *AuditEventResponse {
	return &AuditEventResponse{
		ID:          e.ID,
		ActorUserID: e.ActorUserID,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Action:      e.Action,
		Details:     e.Details,
		CreatedAt:   e.CreatedAt,
	}
}
