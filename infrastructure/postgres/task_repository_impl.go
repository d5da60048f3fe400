package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) getByID(ctx context.Context, id uint, forUpdate bool) (*models.Task, error) {
	tx := r.db.WithContext(ctx)
	// Row lock only where the dialect speaks FOR UPDATE; sqlite serializes
	// writers on its own.
	if forUpdate && r.db.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var task models.Task
	err := tx.
		Preload("UserLinks").
		Preload("TagLinks.Tag").
		Preload("Dependencies").
		Preload("BlockedBy").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	return r.getByID(ctx, id, false)
}

func (r *TaskRepositoryImpl) GetByIDForUpdate(ctx context.Context, id uint) (*models.Task, error) {
	return r.getByID(ctx, id, true)
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	// Full-row save; link collections only ever change through the Replace
	// methods.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uint) error {
	// Link rows and subtasks go with the row via ON DELETE CASCADE.
	return r.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}

func (r *TaskRepositoryImpl) ReplaceUserLinks(ctx context.Context, taskID uint, links []models.TaskUserLink) error {
	tx := r.db.WithContext(ctx)

	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskUserLink{}).Error; err != nil {
		return err
	}

	if len(links) == 0 {
		return nil
	}

	rows := make([]models.TaskUserLink, 0, len(links))
	for _, l := range links {
		rows = append(rows, models.TaskUserLink{TaskID: taskID, UserID: l.UserID, Role: l.Role})
	}
	return tx.Create(&rows).Error
}

func (r *TaskRepositoryImpl) ReplaceTagLinks(ctx context.Context, taskID uint, tagIDs []uint) error {
	tx := r.db.WithContext(ctx)

	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskTagLink{}).Error; err != nil {
		return err
	}

	if len(tagIDs) == 0 {
		return nil
	}

	rows := make([]models.TaskTagLink, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, models.TaskTagLink{TaskID: taskID, TagID: tagID})
	}
	return tx.Create(&rows).Error
}

func (r *TaskRepositoryImpl) ReplaceDependencies(ctx context.Context, taskID uint, dependsOnIDs []uint) error {
	tx := r.db.WithContext(ctx)

	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskDependency{}).Error; err != nil {
		return err
	}

	// self-references are dropped silently, duplicates collapsed
	seen := make(map[uint]struct{}, len(dependsOnIDs))
	rows := make([]models.TaskDependency, 0, len(dependsOnIDs))
	for _, depID := range dependsOnIDs {
		if depID == taskID {
			continue
		}
		if _, ok := seen[depID]; ok {
			continue
		}
		seen[depID] = struct{}{}
		rows = append(rows, models.TaskDependency{TaskID: taskID, DependsOnTaskID: depID})
	}

	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func (r *TaskRepositoryImpl) UpsertTags(ctx context.Context, names []string) ([]models.Tag, error) {
	tx := r.db.WithContext(ctx)

	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var tag models.Tag
		err := tx.Where("name = ?", name).First(&tag).Error
		switch {
		case err == nil:
		case errors.Is(err, gorm.ErrRecordNotFound):
			tag = models.Tag{Name: name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
				return nil, err
			}
			if tag.ID == 0 {
				// lost a concurrent first-creation race; the row exists now
				if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
					return nil, err
				}
			}
		default:
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *TaskRepositoryImpl) applyVisibility(q *gorm.DB, scope repositories.VisibilityScope) *gorm.DB {
	switch s := scope.(type) {
	case repositories.ScopeAccessibleTo:
		linked := r.db.Model(&models.TaskUserLink{}).Select("task_id").Where("user_id = ?", s.UserID)
		return q.Where("tasks.created_by_user_id = ? OR tasks.id IN (?)", s.UserID, linked)
	default:
		return q
	}
}

func (r *TaskRepositoryImpl) Filter(ctx context.Context, f *repositories.TaskFilter, scope repositories.VisibilityScope) ([]*models.Task, int64, error) {
	build := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Task{})
		q = r.applyVisibility(q, scope)

		// archived exclusion sits outside the caller's AND/OR group
		if !f.IncludeArchived {
			q = q.Where("tasks.is_archived = ?", false)
		}

		var conds []string
		var args []any

		if len(f.StatusIn) > 0 {
			conds = append(conds, "tasks.status IN ?")
			args = append(args, f.StatusIn)
		}
		if len(f.PriorityIn) > 0 {
			conds = append(conds, "tasks.priority IN ?")
			args = append(args, f.PriorityIn)
		}
		if len(f.AssigneeUserIDs) > 0 {
			conds = append(conds, "tasks.id IN (SELECT task_id FROM task_user_links WHERE role = ? AND user_id IN ?)")
			args = append(args, models.LinkRoleAssignee, f.AssigneeUserIDs)
		}
		if len(f.CollaboratorUserIDs) > 0 {
			conds = append(conds, "tasks.id IN (SELECT task_id FROM task_user_links WHERE role = ? AND user_id IN ?)")
			args = append(args, models.LinkRoleCollaborator, f.CollaboratorUserIDs)
		}
		if names := models.NormalizeTagNames(f.TagNames); len(names) > 0 {
			conds = append(conds, "tasks.id IN (SELECT task_tag_links.task_id FROM task_tag_links JOIN tags ON tags.id = task_tag_links.tag_id WHERE tags.name IN ?)")
			args = append(args, names)
		}
		if f.DueDateFrom != nil {
			conds = append(conds, "tasks.due_date >= ?")
			args = append(args, *f.DueDateFrom)
		}
		if f.DueDateTo != nil {
			conds = append(conds, "tasks.due_date <= ?")
			args = append(args, *f.DueDateTo)
		}
		if f.CreatedFrom != nil {
			conds = append(conds, "tasks.created_at >= ?")
			args = append(args, *f.CreatedFrom)
		}
		if f.CreatedTo != nil {
			conds = append(conds, "tasks.created_at <= ?")
			args = append(args, *f.CreatedTo)
		}

		if len(conds) > 0 {
			joiner := " AND "
			if f.Logic == "OR" {
				joiner = " OR "
			}
			q = q.Where("("+strings.Join(conds, joiner)+")", args...)
		}

		return q
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.PageSize
	var tasks []*models.Task
	err := build().
		Preload("UserLinks").
		Preload("TagLinks.Tag").
		Preload("Dependencies").
		Preload("BlockedBy").
		Order("tasks.updated_at DESC, tasks.id ASC").
		Offset(offset).
		Limit(f.PageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *TaskRepositoryImpl) OverdueOpenCountsPerUser(ctx context.Context, today time.Time) ([]repositories.AssigneeTaskCounts, error) {
	var rows []repositories.AssigneeTaskCounts
	err := r.db.WithContext(ctx).Raw(`
		SELECT task_user_links.user_id AS user_id,
		       SUM(CASE WHEN tasks.status <> ? THEN 1 ELSE 0 END) AS open_tasks,
		       SUM(CASE WHEN tasks.status <> ? AND tasks.due_date IS NOT NULL AND tasks.due_date < ? THEN 1 ELSE 0 END) AS overdue_tasks
		FROM task_user_links
		JOIN tasks ON tasks.id = task_user_links.task_id
		WHERE task_user_links.role = ?
		GROUP BY task_user_links.user_id`,
		models.StatusDone, models.StatusDone, today, models.LinkRoleAssignee,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
