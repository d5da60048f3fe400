package models

// UserRole is a closed set; permission checks switch on it and nothing else.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleManager UserRole = "MANAGER"
	RoleMember  UserRole = "MEMBER"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	}
	return false
}

type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
	StatusBlocked    TaskStatus = "BLOCKED"
)

type TaskPriority string

const (
	PriorityLow      TaskPriority = "LOW"
	PriorityMedium   TaskPriority = "MEDIUM"
	PriorityHigh     TaskPriority = "HIGH"
	PriorityCritical TaskPriority = "CRITICAL"
)

// TaskUserRole is the role a user holds on a single task. A user holds at
// most one per task.
type TaskUserRole string

const (
	LinkRoleAssignee     TaskUserRole = "ASSIGNEE"
	LinkRoleCollaborator TaskUserRole = "COLLABORATOR"
)

// Audit actions recorded for task mutations.
const (
	AuditEntityTask = "TASK"

	AuditActionCreated             = "CREATED"
	AuditActionUpdated             = "UPDATED"
	AuditActionDeleted             = "DELETED"
	AuditActionBulkUpdated         = "BULK_UPDATED"
	AuditActionDependenciesUpdated = "DEPENDENCIES_UPDATED"
	AuditActionArchived            = "ARCHIVED"
)
