package serviceimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	redispkg "taskboard-api/infrastructure/redis"
	"taskboard-api/pkg/apperrors"
	"taskboard-api/pkg/logger"
)

const distributionCacheTTL = 60 * time.Second

type TaskServiceImpl struct {
	txm      repositories.TxManager
	taskRepo repositories.TaskRepository
	cache    *redispkg.Client // nil disables caching
}

func NewTaskService(txm repositories.TxManager, taskRepo repositories.TaskRepository, cache *redispkg.Client) services.TaskService {
	return &TaskServiceImpl{
		txm:      txm,
		taskRepo: taskRepo,
		cache:    cache,
	}
}

// requireTask loads a task with its relations or fails with NotFound.
// Mutating paths pass forUpdate to hold the row for the transaction.
func requireTask(ctx context.Context, tasks repositories.TaskRepository, taskID uint, forUpdate bool) (*models.Task, error) {
	var task *models.Task
	var err error
	if forUpdate {
		task, err = tasks.GetByIDForUpdate(ctx, taskID)
	} else {
		task, err = tasks.GetByID(ctx, taskID)
	}
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.NotFound("Task not found: %d", taskID)
	}
	return task, nil
}

// applyTaskPatch copies the fields present in the patch onto the task.
// Presence counts as a change even when the value is identical.
func applyTaskPatch(task *models.Task, patch *dto.UpdateTaskRequest) bool {
	changed := false
	if patch.Title != nil {
		task.Title = *patch.Title
		changed = true
	}
	if patch.Description != nil {
		task.Description = patch.Description
		changed = true
	}
	if patch.Status != nil {
		task.Status = *patch.Status
		changed = true
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
		changed = true
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
		changed = true
	}
	if patch.IsArchived != nil {
		task.IsArchived = *patch.IsArchived
		changed = true
	}
	return changed
}

// reload returns the fresh post-commit state with relations materialized,
// not the in-memory object the mutation worked on.
func (s *TaskServiceImpl) reload(ctx context.Context, taskID uint) (*models.Task, error) {
	return requireTask(ctx, s.taskRepo, taskID, false)
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, caller services.Caller, req *dto.CreateTaskRequest) (*models.Task, error) {
	status := req.Status
	if status == "" {
		status = models.StatusTodo
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	var taskID uint
	err := s.txm.WithinTransaction(ctx, func(repos repositories.RepositorySet) error {
		if req.ParentTaskID != nil {
			parent, err := repos.Tasks.GetByID(ctx, *req.ParentTaskID)
			if err != nil {
				return err
			}
			if parent == nil {
				return apperrors.NotFound("Task not found: %d", *req.ParentTaskID)
			}
		}

		// validate every linked user id before writing any link row, so an
		// unknown id cannot leave a partial link set behind
		userIDs := make([]uint, 0, len(req.Users))
		for _, u := range req.Users {
			userIDs = append(userIDs, u.UserID)
		}
		missing, ok, err := repos.Users.ExistAll(ctx, userIDs)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.Validation("User not found: %d", missing)
		}

		task := &models.Task{
			Title:           req.Title,
			Description:     req.Description,
			Status:          status,
			Priority:        priority,
			DueDate:         req.DueDate,
			ParentTaskID:    req.ParentTaskID,
			CreatedByUserID: caller.UserID,
		}
		if err := repos.Tasks.Create(ctx, task); err != nil {
			return err
		}

		links := make([]models.TaskUserLink, 0, len(req.Users))
		for _, u := range req.Users {
			links = append(links, models.TaskUserLink{UserID: u.UserID, Role: u.Role})
		}
		if err := repos.Tasks.ReplaceUserLinks(ctx, task.ID, links); err != nil {
			return err
		}

		tags, err := repos.Tasks.UpsertTags(ctx, models.NormalizeTagNames(req.Tags))
		if err != nil {
			return err
		}
		tagIDs := make([]uint, 0, len(tags))
		for _, tag := range tags {
			tagIDs = append(tagIDs, tag.ID)
		}
		if err := repos.Tasks.ReplaceTagLinks(ctx, task.ID, tagIDs); err != nil {
			return err
		}

		details := "title=" + task.Title
		if err := repos.Audit.Add(ctx, &models.AuditEvent{
			ActorUserID: caller.UserID,
			EntityType:  models.AuditEntityTask,
			EntityID:    task.ID,
			Action:      models.AuditActionCreated,
			Details:     &details,
		}); err != nil {
			return err
		}

		taskID = task.ID
		return nil
	})
	if err != nil {
		logger.WarnContext(ctx, "Task creation failed", "user_id", caller.UserID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created", "task_id", taskID, "user_id", caller.UserID)

	return s.reload(ctx, taskID)
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, caller services.Caller, taskID uint) (*models.Task, error) {
	task, err := requireTask(ctx, s.taskRepo, taskID, false)
	if err != nil {
		return nil, err
	}
	if !models.CanViewTask(task, caller.UserID, caller.Role) {
		return nil, apperrors.PermissionDenied("Not allowed")
	}
	return task, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, caller services.Caller, taskID uint, patch *dto.UpdateTaskRequest) (*models.Task, error) {
	var unchanged *models.Task
	err := s.txm.WithinTransaction(ctx, func(repos repositories.RepositorySet) error {
		task, err := requireTask(ctx, repos.Tasks, taskID, true)
		if err != nil {
			return err
		}
		if !models.CanModifyTask(task, caller.UserID, caller.Role) {
			return apperrors.PermissionDenied("Not allowed")
		}

		if !applyTaskPatch(task, patch) {
			// empty patch is a successful no-op: no row touch, no audit
			unchanged = task
			return nil
		}

		if err := repos.Tasks.Update(ctx, task); err != nil {
			return err
		}

		return repos.Audit.Add(ctx, &models.AuditEvent{
			ActorUserID: caller.UserID,
			EntityType:  models.AuditEntityTask,
			EntityID:    task.ID,
			Action:      models.AuditActionUpdated,
		})
	})
	if err != nil {
		logger.WarnContext(ctx, "Task update failed", "task_id", taskID, "error", err)
		return nil, err
	}
	if unchanged != nil {
		return unchanged, nil
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "user_id", caller.UserID)

	return s.reload(ctx, taskID)
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, caller services.Caller, taskID uint) error {
	err := s.txm.WithinTransaction(ctx, func(repos repositories.RepositorySet) error {
		if _, err := requireTask(ctx, repos.Tasks, taskID, true); err != nil {
			return err
		}
		if !models.CanDeleteTask(caller.Role) {
			return apperrors.PermissionDenied("Only ADMIN can delete tasks")
		}

		// cascades to link rows and subtasks
		if err := repos.Tasks.Delete(ctx, taskID); err != nil {
			return err
		}

		return repos.Audit.Add(ctx, &models.AuditEvent{
			ActorUserID: caller.UserID,
			EntityType:  models.AuditEntityTask,
			EntityID:    taskID,
			Action:      models.AuditActionDeleted,
		})
	})
	if err != nil {
		logger.WarnContext(ctx, "Task deletion failed", "task_id", taskID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", caller.UserID)
	return nil
}

func (s *TaskServiceImpl) BulkUpdate(ctx context.Context, caller services.Caller, updates []dto.BulkTaskUpdateItem) ([]uint, error) {
	updatedIDs := make([]uint, 0, len(updates))

	// the whole batch is one transaction: the first missing or forbidden
	// task rolls back every change already applied in this loop
	err := s.txm.WithinTransaction(ctx, func(repos repositories.RepositorySet) error {
		for _, item := range updates {
			task, err := requireTask(ctx, repos.Tasks, item.ID, true)
			if err != nil {
				return err
			}
			if !models.CanModifyTask(task, caller.UserID, caller.Role) {
				return apperrors.PermissionDenied("Not allowed to update task %d", item.ID)
			}

			if applyTaskPatch(task, &item.Patch) {
				if err := repos.Tasks.Update(ctx, task); err != nil {
					return err
				}
			}
			updatedIDs = append(updatedIDs, item.ID)
		}

		details := fmt.Sprintf("count=%d", len(updatedIDs))
		return repos.Audit.Add(ctx, &models.AuditEvent{
			ActorUserID: caller.UserID,
			EntityType:  models.AuditEntityTask,
			EntityID:    0,
			Action:      models.AuditActionBulkUpdated,
			Details:     &details,
		})
	})
	if err != nil {
		logger.WarnContext(ctx, "Bulk update aborted", "user_id", caller.UserID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Bulk update applied", "user_id", caller.UserID, "count", len(updatedIDs))
	return updatedIDs, nil
}

func (s *TaskServiceImpl) SetDependencies(ctx context.Context, caller services.Caller, taskID uint, dependsOnIDs []uint) (*models.Task, error) {
	err := s.txm.WithinTransaction(ctx, func(repos repositories.RepositorySet) error {
		task, err := requireTask(ctx, repos.Tasks, taskID, true)
		if err != nil {
			return err
		}
		if !models.CanModifyTask(task, caller.UserID, caller.Role) {
			return apperrors.PermissionDenied("Not allowed")
		}

		for _, depID := range dependsOnIDs {
			depTask, err := requireTask(ctx, repos.Tasks, depID, false)
			if err != nil {
				return err
			}
			// one-hop check only: the direct reverse edge rejects, longer
			// cycles pass through
			if depTask.DependsOn(taskID) {
				return apperrors.Validation("Dependency cycle detected (1-hop)")
			}
		}

		if err := repos.Tasks.ReplaceDependencies(ctx, taskID, dependsOnIDs); err != nil {
			return err
		}

		details := fmt.Sprintf("depends_on=%v", dependsOnIDs)
		return repos.Audit.Add(ctx, &models.AuditEvent{
			ActorUserID: caller.UserID,
			EntityType:  models.AuditEntityTask,
			EntityID:    taskID,
			Action:      models.AuditActionDependenciesUpdated,
			Details:     &details,
		})
	})
	if err != nil {
		logger.WarnContext(ctx, "Dependency update failed", "task_id", taskID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Dependencies replaced", "task_id", taskID, "user_id", caller.UserID)

	return s.reload(ctx, taskID)
}

func (s *TaskServiceImpl) ArchiveTask(ctx context.Context, caller services.Caller, taskID uint) (*models.Task, error) {
	err := s.txm.WithinTransaction(ctx, func(repos repositories.RepositorySet) error {
		task, err := requireTask(ctx, repos.Tasks, taskID, true)
		if err != nil {
			return err
		}
		if !models.CanModifyTask(task, caller.UserID, caller.Role) {
			return apperrors.PermissionDenied("Not allowed")
		}

		if len(task.BlockedBy) > 0 {
			return apperrors.Validation("Cannot archive task while other tasks depend on it")
		}

		now := time.Now().UTC()
		task.IsArchived = true
		task.ArchivedAt = &now
		task.ArchivedByUserID = &caller.UserID

		if err := repos.Tasks.Update(ctx, task); err != nil {
			return err
		}

		return repos.Audit.Add(ctx, &models.AuditEvent{
			ActorUserID: caller.UserID,
			EntityType:  models.AuditEntityTask,
			EntityID:    task.ID,
			Action:      models.AuditActionArchived,
		})
	})
	if err != nil {
		logger.WarnContext(ctx, "Task archive failed", "task_id", taskID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task archived", "task_id", taskID, "user_id", caller.UserID)

	return s.reload(ctx, taskID)
}

func (s *TaskServiceImpl) FilterTasks(ctx context.Context, caller services.Caller, f *dto.TaskFilterRequest) ([]*models.Task, int64, error) {
	logic := f.Logic
	if logic == "" {
		logic = "AND"
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	filter := &repositories.TaskFilter{
		Logic:               logic,
		StatusIn:            f.StatusIn,
		PriorityIn:          f.PriorityIn,
		AssigneeUserIDs:     f.AssigneeUserIDs,
		CollaboratorUserIDs: f.CollaboratorUserIDs,
		TagNames:            f.TagNames,
		DueDateFrom:         f.DueDateFrom,
		DueDateTo:           f.DueDateTo,
		CreatedFrom:         f.CreatedFrom,
		CreatedTo:           f.CreatedTo,
		IncludeArchived:     f.IncludeArchived,
		Page:                page,
		PageSize:            pageSize,
	}

	scope := repositories.ScopeForRole(caller.Role, caller.UserID)

	tasks, total, err := s.taskRepo.Filter(ctx, filter, scope)
	if err != nil {
		logger.ErrorContext(ctx, "Task filter failed", "user_id", caller.UserID, "error", err)
		return nil, 0, err
	}
	return tasks, total, nil
}

func (s *TaskServiceImpl) AnalyticsDistribution(ctx context.Context, today time.Time) ([]repositories.AssigneeTaskCounts, error) {
	cacheKey := "analytics:distribution:" + today.Format("2006-01-02")

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached []repositories.AssigneeTaskCounts
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		} else if !redispkg.IsCacheMiss(err) {
			logger.WarnContext(ctx, "Distribution cache read failed", "error", err)
		}
	}

	rows, err := s.taskRepo.OverdueOpenCountsPerUser(ctx, today)
	if err != nil {
		logger.ErrorContext(ctx, "Distribution aggregate failed", "error", err)
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(rows); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, distributionCacheTTL); err != nil {
				logger.WarnContext(ctx, "Distribution cache write failed", "error", err)
			}
		}
	}

	return rows, nil
}
