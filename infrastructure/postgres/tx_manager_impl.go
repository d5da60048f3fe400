package postgres

import (
	"context"

	"gorm.io/gorm"

	"taskboard-api/domain/repositories"
)

type TxManagerImpl struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) repositories.TxManager {
	return &TxManagerImpl{db: db}
}

// WithinTransaction hands fn a repository set bound to one transaction.
// An error from fn rolls everything back, including audit rows.
func (m *TxManagerImpl) WithinTransaction(ctx context.Context, fn func(repos repositories.RepositorySet) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repositories.RepositorySet{
			Users: NewUserRepository(tx),
			Tasks: NewTaskRepository(tx),
			Audit: NewAuditRepository(tx),
		})
	})
}
