package serviceimpl

import (
	"context"
	"time"

	"taskboard-api/domain/repositories"
	"taskboard-api/pkg/logger"
)

// OverdueMonitorService produces the daily workload report the scheduler
// runs: per-assignee open and overdue counts, written to the log.
type OverdueMonitorService struct {
	taskRepo repositories.TaskRepository
}

func NewOverdueMonitorService(taskRepo repositories.TaskRepository) *OverdueMonitorService {
	return &OverdueMonitorService{taskRepo: taskRepo}
}

func (s *OverdueMonitorService) Run() {
	ctx := context.Background()
	today := time.Now().UTC()

	rows, err := s.taskRepo.OverdueOpenCountsPerUser(ctx, today)
	if err != nil {
		logger.Error("Overdue report failed", "error", err)
		return
	}

	overdueAssignees := 0
	for _, row := range rows {
		if row.OverdueTasks > 0 {
			overdueAssignees++
			logger.Warn("Assignee has overdue tasks",
				"user_id", row.UserID,
				"open_tasks", row.OpenTasks,
				"overdue_tasks", row.OverdueTasks)
		}
	}

	logger.Info("Overdue report completed",
		"assignees", len(rows),
		"assignees_with_overdue", overdueAssignees)
}
