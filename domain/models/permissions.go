package models

// Permission predicates are pure functions over the caller's role and the
// relationship facts on a fully loaded task (creator id + link rows). They
// must never be evaluated against a partial projection, since view
// eligibility depends on the link set.

// CanViewTask: Admin always; otherwise creator or any linked user.
func CanViewTask(task *Task, userID uint, role UserRole) bool {
	if role == RoleAdmin {
		return true
	}
	if task.CreatedByUserID == userID {
		return true
	}
	for _, link := range task.UserLinks {
		if link.UserID == userID {
			return true
		}
	}
	return false
}

// CanModifyTask: Admin and Manager always; Member only on self-created tasks.
func CanModifyTask(task *Task, userID uint, role UserRole) bool {
	if role == RoleAdmin || role == RoleManager {
		return true
	}
	return task.CreatedByUserID == userID
}

// CanDeleteTask: Admin only, regardless of creator or links.
func CanDeleteTask(role UserRole) bool {
	return role == RoleAdmin
}
