package models

import (
	"testing"
)

func linkedTask(creatorID uint, linkedIDs ...uint) *Task {
	task := &Task{ID: 1, CreatedByUserID: creatorID}
	for _, id := range linkedIDs {
		task.UserLinks = append(task.UserLinks, TaskUserLink{TaskID: 1, UserID: id, Role: LinkRoleCollaborator})
	}
	return task
}

func TestCanViewTask(t *testing.T) {
	tests := []struct {
		name   string
		task   *Task
		userID uint
		role   UserRole
		want   bool
	}{
		{"admin sees anything", linkedTask(10), 99, RoleAdmin, true},
		{"creator sees own", linkedTask(10), 10, RoleMember, true},
		{"linked user sees", linkedTask(10, 20), 20, RoleMember, true},
		{"unlinked member blind", linkedTask(10, 20), 30, RoleMember, false},
		{"unlinked manager blind", linkedTask(10), 30, RoleManager, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewTask(tt.task, tt.userID, tt.role); got != tt.want {
				t.Errorf("CanViewTask() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanModifyTask(t *testing.T) {
	tests := []struct {
		name   string
		task   *Task
		userID uint
		role   UserRole
		want   bool
	}{
		{"admin modifies anything", linkedTask(10), 99, RoleAdmin, true},
		{"manager modifies anything", linkedTask(10), 99, RoleManager, true},
		{"member modifies own", linkedTask(10), 10, RoleMember, true},
		{"member cannot modify foreign", linkedTask(10), 20, RoleMember, false},
		{"link role grants no modify", linkedTask(10, 20), 20, RoleMember, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModifyTask(tt.task, tt.userID, tt.role); got != tt.want {
				t.Errorf("CanModifyTask() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanDeleteTask(t *testing.T) {
	if !CanDeleteTask(RoleAdmin) {
		t.Error("admin must be allowed to delete")
	}
	if CanDeleteTask(RoleManager) || CanDeleteTask(RoleMember) {
		t.Error("only admin may delete")
	}
}
