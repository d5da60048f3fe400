package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/domain/dto"
	"taskboard-api/domain/models"
	"taskboard-api/pkg/apperrors"
)

func TestCreateTask_LinksAndNormalizedTags(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin@example.com", models.RoleAdmin)
	member := env.seedUser(t, "member@example.com", models.RoleMember)

	task, err := env.tasks.CreateTask(ctx, asCaller(admin), &dto.CreateTaskRequest{
		Title: "Ship release",
		Users: []dto.TaskUserLinkIn{
			{UserID: member.ID, Role: models.LinkRoleAssignee},
			{UserID: admin.ID, Role: models.LinkRoleCollaborator},
		},
		Tags: []string{"Backend ", "backend", "urgent"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusTodo, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, admin.ID, task.CreatedByUserID)
	assert.Equal(t, []uint{member.ID}, task.UserIDsWithRole(models.LinkRoleAssignee))
	assert.Equal(t, []uint{admin.ID}, task.UserIDsWithRole(models.LinkRoleCollaborator))
	assert.ElementsMatch(t, []string{"backend", "urgent"}, task.TagNames())

	// differently cased duplicates collapse to one tag row
	var tagCount int64
	require.NoError(t, env.db.Model(&models.Tag{}).Count(&tagCount).Error)
	assert.EqualValues(t, 2, tagCount)

	assert.EqualValues(t, 1, env.auditCount(t, models.AuditActionCreated))
}

func TestCreateTask_ReusesExistingTagRow(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin@example.com", models.RoleAdmin)

	_, err := env.tasks.CreateTask(ctx, asCaller(admin), &dto.CreateTaskRequest{
		Title: "First",
		Tags:  []string{"backend"},
	})
	require.NoError(t, err)

	_, err = env.tasks.CreateTask(ctx, asCaller(admin), &dto.CreateTaskRequest{
		Title: "Second",
		Tags:  []string{"  BACKEND  "},
	})
	require.NoError(t, err)

	var tags []models.Tag
	require.NoError(t, env.db.Find(&tags).Error)
	require.Len(t, tags, 1)
	assert.Equal(t, "backend", tags[0].Name)
}

func TestCreateTask_UnknownUserRollsBackEverything(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin@example.com", models.RoleAdmin)

	_, err := env.tasks.CreateTask(ctx, asCaller(admin), &dto.CreateTaskRequest{
		Title: "Doomed",
		Users: []dto.TaskUserLinkIn{
			{UserID: admin.ID, Role: models.LinkRoleAssignee},
			{UserID: 9999, Role: models.LinkRoleCollaborator},
		},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	var taskCount, linkCount int64
	require.NoError(t, env.db.Model(&models.Task{}).Count(&taskCount).Error)
	require.NoError(t, env.db.Model(&models.TaskUserLink{}).Count(&linkCount).Error)
	assert.Zero(t, taskCount)
	assert.Zero(t, linkCount)
	assert.Zero(t, env.auditCount(t, models.AuditActionCreated))
}

func TestCreateTask_MissingParent(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin@example.com", models.RoleAdmin)

	parentID := uint(4242)
	_, err := env.tasks.CreateTask(ctx, asCaller(admin), &dto.CreateTaskRequest{
		Title:        "Orphan",
		ParentTaskID: &parentID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestGetTask_Visibility(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin@example.com", models.RoleAdmin)
	creator := env.seedUser(t, "creator@example.com", models.RoleMember)
	linked := env.seedUser(t, "linked@example.com", models.RoleMember)
	outsider := env.seedUser(t, "outsider@example.com", models.RoleMember)

	task, err := env.tasks.CreateTask(ctx, asCaller(creator), &dto.CreateTaskRequest{
		Title: "Visible to some",
		Users: []dto.TaskUserLinkIn{{UserID: linked.ID, Role: models.LinkRoleCollaborator}},
	})
	require.NoError(t, err)

	for _, caller := range []*models.User{admin, creator, linked} {
		got, err := env.tasks.GetTask(ctx, asCaller(caller), task.ID)
		require.NoError(t, err, "user %d should see the task", caller.ID)
		assert.Equal(t, task.ID, got.ID)
	}

	_, err = env.tasks.GetTask(ctx, asCaller(outsider), task.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodePermissionDenied))

	_, err = env.tasks.GetTask(ctx, asCaller(admin), 8888)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestUpdateTask_PartialPatchKeepsOtherFields(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	manager := env.seedUser(t, "manager@example.com", models.RoleManager)

	task, err := env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{
		Title:       "Keep my title",
		Description: strPtr("and my description"),
	})
	require.NoError(t, err)

	updated, err := env.tasks.UpdateTask(ctx, asCaller(manager), task.ID, &dto.UpdateTaskRequest{
		Status: statusPtr(models.StatusInProgress),
	})
	require.NoError(t, err)

	assert.Equal(t, "Keep my title", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "and my description", *updated.Description)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.EqualValues(t, 1, env.auditCount(t, models.AuditActionUpdated))
}

func TestUpdateTask_EmptyPatchIsNoOp(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	manager := env.seedUser(t, "manager@example.com", models.RoleManager)

	task, err := env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{Title: "Untouched"})
	require.NoError(t, err)

	got, err := env.tasks.UpdateTask(ctx, asCaller(manager), task.ID, &dto.UpdateTaskRequest{})
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Zero(t, env.auditCount(t, models.AuditActionUpdated))
}

func TestUpdateTask_MemberCannotTouchForeignTask(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	manager := env.seedUser(t, "manager@example.com", models.RoleManager)
	member := env.seedUser(t, "member@example.com", models.RoleMember)

	task, err := env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{
		Title: "Managed",
		Users: []dto.TaskUserLinkIn{{UserID: member.ID, Role: models.LinkRoleAssignee}},
	})
	require.NoError(t, err)

	// being assigned grants view, not modify
	_, err = env.tasks.UpdateTask(ctx, asCaller(member), task.ID, &dto.UpdateTaskRequest{
		Title: strPtr("hijacked"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodePermissionDenied))
}

func TestDeleteTask_AdminOnlyAndCascades(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin@example.com", models.RoleAdmin)
	manager := env.seedUser(t, "manager@example.com", models.RoleManager)

	task, err := env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{
		Title: "Short-lived",
		Users: []dto.TaskUserLinkIn{{UserID: manager.ID, Role: models.LinkRoleAssignee}},
		Tags:  []string{"cleanup"},
	})
	require.NoError(t, err)

	err = env.tasks.DeleteTask(ctx, asCaller(manager), task.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodePermissionDenied))

	require.NoError(t, env.tasks.DeleteTask(ctx, asCaller(admin), task.ID))

	var taskCount, userLinks, tagLinks int64
	require.NoError(t, env.db.Model(&models.Task{}).Count(&taskCount).Error)
	require.NoError(t, env.db.Model(&models.TaskUserLink{}).Count(&userLinks).Error)
	require.NoError(t, env.db.Model(&models.TaskTagLink{}).Count(&tagLinks).Error)
	assert.Zero(t, taskCount)
	assert.Zero(t, userLinks)
	assert.Zero(t, tagLinks)

	// the audit trail keeps the deleted id
	var event models.AuditEvent
	require.NoError(t, env.db.Where("action = ?", models.AuditActionDeleted).First(&event).Error)
	assert.Equal(t, task.ID, event.EntityID)
}

func TestBulkUpdate_AppliesAllInOrder(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	manager := env.seedUser(t, "manager@example.com", models.RoleManager)

	first, err := env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{Title: "one"})
	require.NoError(t, err)
	second, err := env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{Title: "two"})
	require.NoError(t, err)

	ids, err := env.tasks.BulkUpdate(ctx, asCaller(manager), []dto.BulkTaskUpdateItem{
		{ID: second.ID, Patch: dto.UpdateTaskRequest{Priority: priorityPtr(models.PriorityCritical)}},
		{ID: first.ID, Patch: dto.UpdateTaskRequest{Status: statusPtr(models.StatusDone)}},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{second.ID, first.ID}, ids)

	reloaded, err := env.tasks.GetTask(ctx, asCaller(manager), second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityCritical, reloaded.Priority)

	var event models.AuditEvent
	require.NoError(t, env.db.Where("action = ?", models.AuditActionBulkUpdated).First(&event).Error)
	assert.Zero(t, event.EntityID)
	require.NotNil(t, event.Details)
	assert.Equal(t, "count=2", *event.Details)
}

func TestBulkUpdate_ForbiddenItemAbortsWholeBatch(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	manager := env.seedUser(t, "manager@example.com", models.RoleManager)
	member := env.seedUser(t, "member@example.com", models.RoleMember)

	own, err := env.tasks.CreateTask(ctx, asCaller(member), &dto.CreateTaskRequest{Title: "mine"})
	require.NoError(t, err)
	foreign, err := env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{Title: "not mine"})
	require.NoError(t, err)

	_, err = env.tasks.BulkUpdate(ctx, asCaller(member), []dto.BulkTaskUpdateItem{
		{ID: own.ID, Patch: dto.UpdateTaskRequest{Priority: priorityPtr(models.PriorityHigh)}},
		{ID: foreign.ID, Patch: dto.UpdateTaskRequest{Priority: priorityPtr(models.PriorityHigh)}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodePermissionDenied))
	assert.Contains(t, err.Error(), "task")

	// the patch the member was allowed to make must be rolled back too
	reloaded, err := env.tasks.GetTask(ctx, asCaller(member), own.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, reloaded.Priority)
	assert.Zero(t, env.auditCount(t, models.AuditActionBulkUpdated))
}

func TestBulkUpdate_MissingItemAbortsWholeBatch(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	manager := env.seedUser(t, "manager@example.com", models.RoleManager)

	task, err := env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{Title: "survivor"})
	require.NoError(t, err)

	_, err = env.tasks.BulkUpdate(ctx, asCaller(manager), []dto.BulkTaskUpdateItem{
		{ID: task.ID, Patch: dto.UpdateTaskRequest{Status: statusPtr(models.StatusBlocked)}},
		{ID: 7777, Patch: dto.UpdateTaskRequest{Status: statusPtr(models.StatusBlocked)}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	reloaded, err := env.tasks.GetTask(ctx, asCaller(manager), task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTodo, reloaded.Status)
}

func TestSetDependencies_ReplaceAndOneHopCycle(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	manager := env.seedUser(t, "manager@example.com", models.RoleManager)

	a, err := env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{Title: "A"})
	require.NoError(t, err)
	b, err := env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{Title: "B"})
	require.NoError(t, err)
	c, err := env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{Title: "C"})
	require.NoError(t, err)

	updated, err := env.tasks.SetDependencies(ctx, asCaller(manager), a.ID, []uint{b.ID, c.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{b.ID, c.ID}, updated.DependencyIDs())

	// wholesale replace drops the edges not in the new set
	updated, err = env.tasks.SetDependencies(ctx, asCaller(manager), a.ID, []uint{c.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{c.ID}, updated.DependencyIDs())

	// the direct reverse edge is rejected
	_, err = env.tasks.SetDependencies(ctx, asCaller(manager), c.ID, []uint{a.ID})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	// a self-reference is silently dropped, not an error
	updated, err = env.tasks.SetDependencies(ctx, asCaller(manager), b.ID, []uint{b.ID})
	require.NoError(t, err)
	assert.Empty(t, updated.DependencyIDs())

	_, err = env.tasks.SetDependencies(ctx, asCaller(manager), b.ID, []uint{6666})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestArchiveTask_BlockedByInboundEdges(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	manager := env.seedUser(t, "manager@example.com", models.RoleManager)

	base, err := env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{Title: "base"})
	require.NoError(t, err)
	dependent, err := env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{Title: "dependent"})
	require.NoError(t, err)

	_, err = env.tasks.SetDependencies(ctx, asCaller(manager), dependent.ID, []uint{base.ID})
	require.NoError(t, err)

	_, err = env.tasks.ArchiveTask(ctx, asCaller(manager), base.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))

	// clearing the inbound edge unblocks archival
	_, err = env.tasks.SetDependencies(ctx, asCaller(manager), dependent.ID, nil)
	require.NoError(t, err)

	archived, err := env.tasks.ArchiveTask(ctx, asCaller(manager), base.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)
	require.NotNil(t, archived.ArchivedAt)
	require.NotNil(t, archived.ArchivedByUserID)
	assert.Equal(t, manager.ID, *archived.ArchivedByUserID)
	assert.EqualValues(t, 1, env.auditCount(t, models.AuditActionArchived))
}

func TestFilterTasks_VisibilityScoping(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin@example.com", models.RoleAdmin)
	manager := env.seedUser(t, "manager@example.com", models.RoleManager)
	member := env.seedUser(t, "member@example.com", models.RoleMember)

	_, err := env.tasks.CreateTask(ctx, asCaller(member), &dto.CreateTaskRequest{Title: "member's own"})
	require.NoError(t, err)
	_, err = env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{
		Title: "member assigned",
		Users: []dto.TaskUserLinkIn{{UserID: member.ID, Role: models.LinkRoleAssignee}},
	})
	require.NoError(t, err)
	_, err = env.tasks.CreateTask(ctx, asCaller(manager), &dto.CreateTaskRequest{Title: "unrelated"})
	require.NoError(t, err)

	_, total, err := env.tasks.FilterTasks(ctx, asCaller(member), &dto.TaskFilterRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, total, err = env.tasks.FilterTasks(ctx, asCaller(admin), &dto.TaskFilterRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestFilterTasks_PaginationInvariants(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin@example.com", models.RoleAdmin)

	for _, title := range []string{"t1", "t2", "t3", "t4", "t5"} {
		_, err := env.tasks.CreateTask(ctx, asCaller(admin), &dto.CreateTaskRequest{Title: title})
		require.NoError(t, err)
	}

	seen := make(map[uint]bool)
	for page := 1; page <= 3; page++ {
		tasks, total, err := env.tasks.FilterTasks(ctx, asCaller(admin), &dto.TaskFilterRequest{
			Page:     page,
			PageSize: 2,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 5, total, "total must not depend on the page")

		for _, task := range tasks {
			assert.False(t, seen[task.ID], "task %d appeared on two pages", task.ID)
			seen[task.ID] = true
		}
	}
	assert.Len(t, seen, 5)
}

func TestFilterTasks_ArchivedExcludedByDefault(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin@example.com", models.RoleAdmin)

	keep, err := env.tasks.CreateTask(ctx, asCaller(admin), &dto.CreateTaskRequest{Title: "active"})
	require.NoError(t, err)
	gone, err := env.tasks.CreateTask(ctx, asCaller(admin), &dto.CreateTaskRequest{Title: "done with"})
	require.NoError(t, err)

	_, err = env.tasks.ArchiveTask(ctx, asCaller(admin), gone.ID)
	require.NoError(t, err)

	tasks, total, err := env.tasks.FilterTasks(ctx, asCaller(admin), &dto.TaskFilterRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ID)

	_, total, err = env.tasks.FilterTasks(ctx, asCaller(admin), &dto.TaskFilterRequest{IncludeArchived: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestFilterTasks_PredicatesAndLogic(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin@example.com", models.RoleAdmin)
	member := env.seedUser(t, "member@example.com", models.RoleMember)

	_, err := env.tasks.CreateTask(ctx, asCaller(admin), &dto.CreateTaskRequest{
		Title:    "urgent backend",
		Priority: models.PriorityCritical,
		Tags:     []string{"backend"},
		Users:    []dto.TaskUserLinkIn{{UserID: member.ID, Role: models.LinkRoleAssignee}},
	})
	require.NoError(t, err)
	_, err = env.tasks.CreateTask(ctx, asCaller(admin), &dto.CreateTaskRequest{
		Title:  "frontend chore",
		Status: models.StatusInProgress,
		Tags:   []string{"frontend"},
	})
	require.NoError(t, err)

	// AND: both predicates must hold
	_, total, err := env.tasks.FilterTasks(ctx, asCaller(admin), &dto.TaskFilterRequest{
		PriorityIn: []models.TaskPriority{models.PriorityCritical},
		TagNames:   []string{"frontend"},
	})
	require.NoError(t, err)
	assert.Zero(t, total)

	// OR: either suffices
	_, total, err = env.tasks.FilterTasks(ctx, asCaller(admin), &dto.TaskFilterRequest{
		Logic:      "OR",
		PriorityIn: []models.TaskPriority{models.PriorityCritical},
		TagNames:   []string{"frontend"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// assignee predicate
	_, total, err = env.tasks.FilterTasks(ctx, asCaller(admin), &dto.TaskFilterRequest{
		AssigneeUserIDs: []uint{member.ID},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// tag names normalize before matching
	_, total, err = env.tasks.FilterTasks(ctx, asCaller(admin), &dto.TaskFilterRequest{
		TagNames: []string{" Backend "},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestAnalyticsDistribution_OpenAndOverdueCounts(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "admin@example.com", models.RoleAdmin)
	member := env.seedUser(t, "member@example.com", models.RoleMember)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)

	_, err := env.tasks.CreateTask(ctx, asCaller(admin), &dto.CreateTaskRequest{
		Title:   "overdue",
		DueDate: &yesterday,
		Users:   []dto.TaskUserLinkIn{{UserID: member.ID, Role: models.LinkRoleAssignee}},
	})
	require.NoError(t, err)
	_, err = env.tasks.CreateTask(ctx, asCaller(admin), &dto.CreateTaskRequest{
		Title:   "on track",
		DueDate: &tomorrow,
		Users:   []dto.TaskUserLinkIn{{UserID: member.ID, Role: models.LinkRoleAssignee}},
	})
	require.NoError(t, err)
	done, err := env.tasks.CreateTask(ctx, asCaller(admin), &dto.CreateTaskRequest{
		Title:   "finished late",
		DueDate: &yesterday,
		Users:   []dto.TaskUserLinkIn{{UserID: member.ID, Role: models.LinkRoleAssignee}},
	})
	require.NoError(t, err)
	_, err = env.tasks.UpdateTask(ctx, asCaller(admin), done.ID, &dto.UpdateTaskRequest{
		Status: statusPtr(models.StatusDone),
	})
	require.NoError(t, err)

	rows, err := env.tasks.AnalyticsDistribution(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, member.ID, rows[0].UserID)
	assert.EqualValues(t, 2, rows[0].OpenTasks)
	assert.EqualValues(t, 1, rows[0].OverdueTasks)
}
