package models

import (
	"time"
)

type Task struct {
	ID          uint         `gorm:"primaryKey"`
	Title       string       `gorm:"size:200;not null;index"`
	Description *string      `gorm:"type:text"`
	Status      TaskStatus   `gorm:"size:20;not null;index;index:ix_tasks_status_priority"`
	Priority    TaskPriority `gorm:"size:20;not null;index:ix_tasks_status_priority"`
	DueDate     *time.Time

	// Archival is a soft state: the row stays, filters exclude it by default.
	IsArchived       bool `gorm:"not null;default:false"`
	ArchivedAt       *time.Time
	ArchivedByUserID *uint `gorm:"index"`

	// Immutable after creation; drives default modify rights.
	CreatedByUserID uint `gorm:"not null;index"`

	ParentTaskID *uint `gorm:"index"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`

	Creator  *User  `gorm:"foreignKey:CreatedByUserID"`
	Subtasks []Task `gorm:"foreignKey:ParentTaskID;constraint:OnDelete:CASCADE"`

	UserLinks []TaskUserLink `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	TagLinks  []TaskTagLink  `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`

	// Dependencies are the outgoing edges (this task is blocked by those),
	// BlockedBy the incoming ones (those tasks are blocked by this one).
	Dependencies []TaskDependency `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	BlockedBy    []TaskDependency `gorm:"foreignKey:DependsOnTaskID;constraint:OnDelete:CASCADE"`
}

func (Task) TableName() string {
	return "tasks"
}

// UserIDsWithRole returns linked user ids holding the given role.
func (t *Task) UserIDsWithRole(role TaskUserRole) []uint {
	ids := make([]uint, 0, len(t.UserLinks))
	for _, l := range t.UserLinks {
		if l.Role == role {
			ids = append(ids, l.UserID)
		}
	}
	return ids
}

// TagNames returns the normalized names of the task's tags.
func (t *Task) TagNames() []string {
	names := make([]string, 0, len(t.TagLinks))
	for _, tl := range t.TagLinks {
		if tl.Tag != nil {
			names = append(names, tl.Tag.Name)
		}
	}
	return names
}

// DependencyIDs returns the ids of the tasks this task depends on.
func (t *Task) DependencyIDs() []uint {
	ids := make([]uint, 0, len(t.Dependencies))
	for _, d := range t.Dependencies {
		ids = append(ids, d.DependsOnTaskID)
	}
	return ids
}

// DependsOn reports whether the task has an outgoing edge to the given task.
func (t *Task) DependsOn(taskID uint) bool {
	for _, d := range t.Dependencies {
		if d.DependsOnTaskID == taskID {
			return true
		}
	}
	return false
}

type TaskUserLink struct {
	ID     uint         `gorm:"primaryKey"`
	TaskID uint         `gorm:"not null;index;uniqueIndex:uq_task_user"`
	UserID uint         `gorm:"not null;index;uniqueIndex:uq_task_user"`
	Role   TaskUserRole `gorm:"size:20;not null;index"`
}

func (TaskUserLink) TableName() string {
	return "task_user_links"
}

type TaskTagLink struct {
	ID     uint `gorm:"primaryKey"`
	TaskID uint `gorm:"not null;index;uniqueIndex:uq_task_tag"`
	TagID  uint `gorm:"not null;index;uniqueIndex:uq_task_tag"`

	Tag *Tag `gorm:"foreignKey:TagID"`
}

func (TaskTagLink) TableName() string {
	return "task_tag_links"
}

// TaskDependency is a directed edge: TaskID is blocked by DependsOnTaskID.
type TaskDependency struct {
	ID              uint `gorm:"primaryKey"`
	TaskID          uint `gorm:"not null;index;uniqueIndex:uq_dependency"`
	DependsOnTaskID uint `gorm:"not null;index;uniqueIndex:uq_dependency"`
}

func (TaskDependency) TableName() string {
	return "task_dependencies"
}
