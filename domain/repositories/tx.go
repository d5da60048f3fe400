package repositories

import (
	"context"
)

// RepositorySet bundles the repositories bound to one transaction.
type RepositorySet struct {
	Users UserRepository
	Tasks TaskRepository
	Audit AuditRepository
}

// TxManager runs fn inside a single transaction scope. Everything fn writes
// through the provided repositories commits or rolls back together; returning
// an error rolls back. No mutation path may leave the task row, its link
// tables and the audit log partially updated.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(repos RepositorySet) error) error
}
