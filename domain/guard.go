package domain

// Decision is the tagged result of a guard predicate. Guards return a denial
// reason instead of an error so call sites can surface the exact reason to
// the end user without exception-style handling.
type Decision struct {
	Allowed bool
	Code    ErrorCode
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(code ErrorCode, reason string) Decision {
	return Decision{Code: code, Reason: reason}
}

// Err converts a denial into a domain error; it returns nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return NewError(d.Code, d.Reason)
}

// CanChangeMemberRole guards role changes on the member-management surface.
// Elevation to admin is excluded from this surface entirely; the sole active
// admin of an organization can never be demoted. activeAdmins is the count of
// active admin memberships in the target's organization, read from the
// source of truth alongside the target itself.
func CanChangeMemberRole(actorRole Role, target *Membership, newRole Role, activeAdmins int) Decision {
	if !actorRole.IsSupervisor() {
		return Deny(ErrCodeForbidden, "changing member roles requires manager role or above")
	}
	if !newRole.Valid() {
		return Deny(ErrCodeInvalid, "unknown role")
	}
	if newRole == RoleAdmin && (target == nil || target.Role != RoleAdmin) {
		return Deny(ErrCodeForbidden, "admin elevation is not available here")
	}
	if target.IsActiveAdmin() && newRole != RoleAdmin && activeAdmins <= 1 {
		return Deny(ErrCodeConflict, "cannot demote the only admin")
	}
	return Allow()
}

// CanSetMemberActive guards activation toggles. Self-deactivation always
// fails regardless of role, as does deactivating the sole active admin.
func CanSetMemberActive(actorID string, actorRole Role, target *Membership, active bool, activeAdmins int) Decision {
	if !actorRole.IsSupervisor() {
		return Deny(ErrCodeForbidden, "changing member activation requires manager role or above")
	}
	if active {
		return Allow()
	}
	if target != nil && target.UserID == actorID {
		return Deny(ErrCodeConflict, "cannot deactivate self")
	}
	if target.IsActiveAdmin() && activeAdmins <= 1 {
		return Deny(ErrCodeConflict, "cannot deactivate the only admin")
	}
	return Allow()
}

// CanChangeTaskStatus allows supervisors and the task's current assignee.
func CanChangeTaskStatus(actorID string, actorRole Role, task *Task) Decision {
	if actorRole.IsSupervisor() || task.IsAssignee(actorID) {
		return Allow()
	}
	return Deny(ErrCodeForbidden, "only a supervisor or the assignee may change task status")
}

// CanReassignTask covers assignee changes; assignees cannot reassign their
// own tasks, only supervisors can.
func CanReassignTask(actorRole Role) Decision {
	if actorRole.IsSupervisor() {
		return Allow()
	}
	return Deny(ErrCodeForbidden, "only a supervisor may reassign tasks")
}

// CanSetExpectedFinish covers expected-finish changes, supervisor only.
func CanSetExpectedFinish(actorRole Role) Decision {
	if actorRole.IsSupervisor() {
		return Allow()
	}
	return Deny(ErrCodeForbidden, "only a supervisor may change the expected finish")
}

// CanCreateReply allows supervisors and the task's assignee to post progress
// replies.
func CanCreateReply(actorID string, actorRole Role, task *Task) Decision {
	if actorRole.IsSupervisor() || task.IsAssignee(actorID) {
		return Allow()
	}
	return Deny(ErrCodeForbidden, "only a supervisor or the assignee may reply on this task")
}

// CanModifyReply allows the reply's original author and supervisors to edit
// or delete a reply. Supervisor override is enforced here rather than being
// delegated to a storage policy.
func CanModifyReply(actorID string, actorRole Role, reply *Reply) Decision {
	if actorRole.IsSupervisor() || reply.IsAuthor(actorID) {
		return Allow()
	}
	return Deny(ErrCodeForbidden, "only the author or a supervisor may modify this reply")
}

// CanReviewWorkLog guards the approval workflow: supervisors only, and never
// on their own log.
func CanReviewWorkLog(actorID string, actorRole Role, log *WorkLog) Decision {
	if !actorRole.IsSupervisor() {
		return Deny(ErrCodeForbidden, "reviewing work logs requires manager role or above")
	}
	if log != nil && log.AuthorID == actorID {
		return Deny(ErrCodeConflict, "cannot review your own work log")
	}
	return Allow()
}

// CanEditWorkLog allows the author to edit a pending log; reviewed logs are
// immutable.
func CanEditWorkLog(actorID string, log *WorkLog) Decision {
	if log == nil || log.AuthorID != actorID {
		return Deny(ErrCodeForbidden, "only the author may edit a work log")
	}
	if !log.IsPending() {
		return Deny(ErrCodeConflict, "a reviewed work log can no longer be edited")
	}
	return Allow()
}
