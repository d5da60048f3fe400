package repositories

import (
	"context"
	"time"

	"taskboard-api/domain/models"
)

// VisibilityScope restricts task queries to the rows a caller may see. The
// two implementations are interchangeable; callers pick one per request from
// the caller's role and never branch on role again.
type VisibilityScope interface {
	visibilityScope()
}

// ScopeAll covers every task (Admin callers).
type ScopeAll struct{}

// ScopeAccessibleTo covers tasks the user created or is linked to.
type ScopeAccessibleTo struct {
	UserID uint
}

func (ScopeAll) visibilityScope()          {}
func (ScopeAccessibleTo) visibilityScope() {}

// ScopeForRole selects the visibility scope for a caller.
func ScopeForRole(role models.UserRole, userID uint) VisibilityScope {
	if role == models.RoleAdmin {
		return ScopeAll{}
	}
	return ScopeAccessibleTo{UserID: userID}
}

// TaskFilter mirrors the filter operation's predicate set. Optional
// predicates combine with Logic; the archived exclusion is always AND-ed in
// separately and never joins the OR group.
type TaskFilter struct {
	Logic               string // "AND" or "OR"
	StatusIn            []models.TaskStatus
	PriorityIn          []models.TaskPriority
	AssigneeUserIDs     []uint
	CollaboratorUserIDs []uint
	TagNames            []string
	DueDateFrom         *time.Time
	DueDateTo           *time.Time
	CreatedFrom         *time.Time
	CreatedTo           *time.Time
	IncludeArchived     bool

	Page     int
	PageSize int
}

// AssigneeTaskCounts is the per-assignee aggregate: open is every non-Done
// task, overdue the subset with a due date before the reference date.
type AssigneeTaskCounts struct {
	UserID       uint  `json:"user_id"`
	OpenTasks    int64 `json:"open_tasks"`
	OverdueTasks int64 `json:"overdue_tasks"`
}

type TaskRepository interface {
	// GetByID loads the task with all link collections (user links, tag links
	// with tags, outgoing dependencies, incoming blocked-by edges). Returns
	// (nil, nil) when the id does not resolve.
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	// GetByIDForUpdate is GetByID with a row lock on the task for the
	// remainder of the surrounding transaction, where the dialect supports it.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	// Update persists the task row itself; link collections are replaced
	// through the wholesale methods below, never patched via associations.
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uint) error

	// Wholesale replacement: delete all existing rows for the task, insert
	// the new complete set.
	ReplaceUserLinks(ctx context.Context, taskID uint, links []models.TaskUserLink) error
	ReplaceTagLinks(ctx context.Context, taskID uint, tagIDs []uint) error
	// ReplaceDependencies drops self-references and duplicates before insert.
	ReplaceDependencies(ctx context.Context, taskID uint, dependsOnIDs []uint) error

	// UpsertTags resolves normalized names to tag rows, creating missing ones.
	// Concurrent first-creation of a name must resolve to the existing row.
	UpsertTags(ctx context.Context, names []string) ([]models.Tag, error)

	// Filter returns one page of visible tasks plus the pre-pagination total.
	// Ordered by updated_at descending, id ascending on ties.
	Filter(ctx context.Context, f *TaskFilter, scope VisibilityScope) ([]*models.Task, int64, error)

	// OverdueOpenCountsPerUser computes the per-assignee open/overdue counts
	// server-side, grouped by user id.
	OverdueOpenCountsPerUser(ctx context.Context, today time.Time) ([]AssigneeTaskCounts, error)
}
