package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func activeMember(userID string, role Role) *Membership {
	return &Membership{OrgID: "org1", UserID: userID, Role: role, IsActive: true}
}

func TestCanChangeMemberRole(t *testing.T) {
	soleAdmin := activeMember("a1", RoleAdmin)

	t.Run("member actor is rejected", func(t *testing.T) {
		d := CanChangeMemberRole(RoleMember, activeMember("u1", RoleMember), RoleManager, 2)
		require.False(t, d.Allowed)
		require.Equal(t, ErrCodeForbidden, d.Code)
	})

	t.Run("admin elevation is always rejected on this surface", func(t *testing.T) {
		d := CanChangeMemberRole(RoleAdmin, activeMember("u1", RoleMember), RoleAdmin, 2)
		require.False(t, d.Allowed)
		require.Contains(t, d.Reason, "admin elevation")
	})

	t.Run("sole admin cannot be demoted", func(t *testing.T) {
		d := CanChangeMemberRole(RoleAdmin, soleAdmin, RoleMember, 1)
		require.False(t, d.Allowed)
		require.Equal(t, ErrCodeConflict, d.Code)
		require.Equal(t, "cannot demote the only admin", d.Reason)
	})

	t.Run("demotion succeeds with a second active admin", func(t *testing.T) {
		d := CanChangeMemberRole(RoleAdmin, soleAdmin, RoleManager, 2)
		require.True(t, d.Allowed)
		require.NoError(t, d.Err())
	})

	t.Run("manager may adjust member and manager roles", func(t *testing.T) {
		d := CanChangeMemberRole(RoleManager, activeMember("u1", RoleMember), RoleManager, 1)
		require.True(t, d.Allowed)
	})

	t.Run("unknown role", func(t *testing.T) {
		d := CanChangeMemberRole(RoleAdmin, activeMember("u1", RoleMember), Role("owner"), 2)
		require.False(t, d.Allowed)
		require.Equal(t, ErrCodeInvalid, d.Code)
	})
}

func TestCanSetMemberActive(t *testing.T) {
	t.Run("self deactivation always fails", func(t *testing.T) {
		for _, role := range []Role{RoleAdmin, RoleManager} {
			d := CanSetMemberActive("a1", role, activeMember("a1", role), false, 2)
			require.False(t, d.Allowed)
			require.Equal(t, "cannot deactivate self", d.Reason)
		}
	})

	t.Run("sole admin cannot be deactivated", func(t *testing.T) {
		d := CanSetMemberActive("m1", RoleManager, activeMember("a1", RoleAdmin), false, 1)
		require.False(t, d.Allowed)
		require.Equal(t, "cannot deactivate the only admin", d.Reason)
	})

	t.Run("second admin makes deactivation possible", func(t *testing.T) {
		d := CanSetMemberActive("a2", RoleAdmin, activeMember("a1", RoleAdmin), false, 2)
		require.True(t, d.Allowed)
	})

	t.Run("reactivation has no self or sole-admin guard", func(t *testing.T) {
		inactive := &Membership{OrgID: "org1", UserID: "u1", Role: RoleMember}
		d := CanSetMemberActive("a1", RoleAdmin, inactive, true, 1)
		require.True(t, d.Allowed)
	})

	t.Run("member actor is rejected", func(t *testing.T) {
		d := CanSetMemberActive("u2", RoleMember, activeMember("u1", RoleMember), false, 1)
		require.False(t, d.Allowed)
		require.Equal(t, ErrCodeForbidden, d.Code)
	})
}

func TestTaskGuards(t *testing.T) {
	assignee := "u1"
	task := &Task{ID: "t1", AssigneeID: &assignee, Status: StatusTodo}

	require.True(t, CanChangeTaskStatus("u1", RoleMember, task).Allowed)
	require.True(t, CanChangeTaskStatus("boss", RoleManager, task).Allowed)
	require.False(t, CanChangeTaskStatus("u2", RoleMember, task).Allowed)

	// assignees may move status but not reassign or reschedule
	require.False(t, CanReassignTask(RoleMember).Allowed)
	require.True(t, CanReassignTask(RoleManager).Allowed)
	require.False(t, CanSetExpectedFinish(RoleMember).Allowed)
	require.True(t, CanSetExpectedFinish(RoleAdmin).Allowed)
}

func TestReplyGuards(t *testing.T) {
	assignee := "u1"
	task := &Task{ID: "t1", AssigneeID: &assignee}
	reply := &Reply{ID: "r1", TaskID: "t1", AuthorID: "u1"}

	require.True(t, CanCreateReply("u1", RoleMember, task).Allowed)
	require.False(t, CanCreateReply("u2", RoleMember, task).Allowed)
	require.True(t, CanCreateReply("boss", RoleManager, task).Allowed)

	require.True(t, CanModifyReply("u1", RoleMember, reply).Allowed)
	require.False(t, CanModifyReply("u2", RoleMember, reply).Allowed)
	require.True(t, CanModifyReply("boss", RoleAdmin, reply).Allowed)
}

func TestWorkLogGuards(t *testing.T) {
	log := &WorkLog{ID: "w1", AuthorID: "u1", Status: WorkLogPending}

	t.Run("review requires a supervisor", func(t *testing.T) {
		require.False(t, CanReviewWorkLog("u2", RoleMember, log).Allowed)
		require.True(t, CanReviewWorkLog("boss", RoleManager, log).Allowed)
	})

	t.Run("self approval is rejected", func(t *testing.T) {
		d := CanReviewWorkLog("u1", RoleAdmin, log)
		require.False(t, d.Allowed)
		require.Equal(t, "cannot review your own work log", d.Reason)
	})

	t.Run("author edits pending logs only", func(t *testing.T) {
		require.True(t, CanEditWorkLog("u1", log).Allowed)
		require.False(t, CanEditWorkLog("u2", log).Allowed)

		approved := &WorkLog{ID: "w2", AuthorID: "u1", Status: WorkLogApproved}
		require.False(t, CanEditWorkLog("u1", approved).Allowed)
	})
}
