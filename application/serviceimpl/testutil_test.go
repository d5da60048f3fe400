package serviceimpl

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskboard-api/domain/models"
	"taskboard-api/domain/repositories"
	"taskboard-api/domain/services"
	"taskboard-api/infrastructure/postgres"
	"taskboard-api/pkg/config"
)

var testDBSeq atomic.Int64

type testEnv struct {
	db       *gorm.DB
	tasks    services.TaskService
	auth     services.AuthService
	timeline services.TimelineService
	taskRepo repositories.TaskRepository
}

// setupTestEnv wires the services against a fresh in-memory database. One
// connection keeps the shared-cache database alive for the test's lifetime.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:taskboard_test_%d?mode=memory&cache=shared&_foreign_keys=on", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(db))

	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	txm := postgres.NewTxManager(db)

	return &testEnv{
		db:       db,
		tasks:    NewTaskService(txm, taskRepo, nil),
		auth:     NewAuthService(userRepo, &config.JWTConfig{Secret: "test-secret", ExpireMinutes: 60}),
		timeline: NewTimelineService(auditRepo),
		taskRepo: taskRepo,
	}
}

func (e *testEnv) seedUser(t *testing.T, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{Email: email, Role: role, PasswordHash: "irrelevant"}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) auditCount(t *testing.T, action string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.db.Model(&models.AuditEvent{}).Where("action = ?", action).Count(&count).Error)
	return count
}

func asCaller(u *models.User) services.Caller {
	return services.Caller{UserID: u.ID, Role: u.Role}
}

func strPtr(s string) *string { return &s }

func statusPtr(s models.TaskStatus) *models.TaskStatus { return &s }

func priorityPtr(p models.TaskPriority) *models.TaskPriority { return &p }
