package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

type taskRepoMock struct{ mock.Mock }

var _ repository.TaskRepository = (*taskRepoMock)(nil)

func (m *taskRepoMock) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *taskRepoMock) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *taskRepoMock) ListCompletedBetween(ctx context.Context, orgID string, from, to time.Time) ([]domain.Task, error) {
	args := m.Called(ctx, orgID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *taskRepoMock) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *taskRepoMock) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *taskRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type replyRepoMock struct{ mock.Mock }

var _ repository.ReplyRepository = (*replyRepoMock)(nil)

func (m *replyRepoMock) GetByID(ctx context.Context, id string) (*domain.Reply, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reply), args.Error(1)
}

func (m *replyRepoMock) ListByTask(ctx context.Context, taskID string) ([]domain.Reply, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reply), args.Error(1)
}

func (m *replyRepoMock) Create(ctx context.Context, reply *domain.Reply) (*domain.Reply, error) {
	args := m.Called(ctx, reply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reply), args.Error(1)
}

func (m *replyRepoMock) Update(ctx context.Context, reply *domain.Reply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}

func (m *replyRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type membershipMock struct{ mock.Mock }

var _ repository.MembershipRepository = (*membershipMock)(nil)

func (m *membershipMock) GetActive(ctx context.Context, orgID, userID string) ([]domain.Membership, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *membershipMock) Get(ctx context.Context, orgID, userID string) (*domain.Membership, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *membershipMock) List(ctx context.Context, orgID string) ([]domain.Membership, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *membershipMock) CountActiveAdmins(ctx context.Context, orgID string) (int, error) {
	args := m.Called(ctx, orgID)
	return args.Int(0), args.Error(1)
}

func (m *membershipMock) SetRole(ctx context.Context, orgID, userID string, role domain.Role) error {
	args := m.Called(ctx, orgID, userID, role)
	return args.Error(0)
}

func (m *membershipMock) SetActive(ctx context.Context, orgID, userID string, active bool) error {
	args := m.Called(ctx, orgID, userID, active)
	return args.Error(0)
}

func (m *membershipMock) Create(ctx context.Context, membership *domain.Membership) (*domain.Membership, error) {
	args := m.Called(ctx, membership)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

const orgID = "org1"

func expectRole(repo *membershipMock, userID string, role domain.Role) {
	repo.On("GetActive", mock.Anything, orgID, userID).
		Return([]domain.Membership{{OrgID: orgID, UserID: userID, Role: role, IsActive: true}}, nil)
}

func newUseCase(tasks *taskRepoMock, replies *replyRepoMock, memberships *membershipMock) *UseCase {
	return New(tasks, replies, memberships, nil, zap.NewNop())
}

func strPtr(s string) *string { return &s }

func TestListScopesMembersToOwnAssignments(t *testing.T) {
	ctx := context.Background()

	t.Run("member is restricted to own assignments", func(t *testing.T) {
		tasks := &taskRepoMock{}
		memberships := &membershipMock{}
		expectRole(memberships, "u1", domain.RoleMember)
		tasks.On("List", mock.Anything, repository.TaskFilter{OrgID: orgID, AssigneeID: "u1"}).
			Return([]domain.Task{{ID: "t1", AssigneeID: strPtr("u1")}}, nil)

		uc := newUseCase(tasks, &replyRepoMock{}, memberships)
		result, err := uc.List(ctx, orgID, "u1", repository.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, result, 1)
		tasks.AssertExpectations(t)
	})

	t.Run("supervisor receives the full set", func(t *testing.T) {
		tasks := &taskRepoMock{}
		memberships := &membershipMock{}
		expectRole(memberships, "boss", domain.RoleManager)
		tasks.On("List", mock.Anything, repository.TaskFilter{OrgID: orgID}).
			Return([]domain.Task{{ID: "t1"}, {ID: "t2"}}, nil)

		uc := newUseCase(tasks, &replyRepoMock{}, memberships)
		result, err := uc.List(ctx, orgID, "boss", repository.TaskFilter{})
		require.NoError(t, err)
		require.Len(t, result, 2)
		tasks.AssertExpectations(t)
	})
}

func TestChangeStatusTracksCompletion(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	tasks := &taskRepoMock{}
	memberships := &membershipMock{}
	expectRole(memberships, "u1", domain.RoleMember)

	current := &domain.Task{ID: "t1", OrgID: orgID, AssigneeID: strPtr("u1"), Status: domain.StatusInProgress}
	tasks.On("GetByID", mock.Anything, "t1").Return(current, nil)
	tasks.On("Update", mock.Anything, mock.Anything).Return(nil)

	uc := newUseCase(tasks, &replyRepoMock{}, memberships)
	uc.now = func() time.Time { return now }

	done, err := uc.ChangeStatus(ctx, "u1", "t1", domain.StatusDone)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDone, done.Status)
	require.NotNil(t, done.CompletedAt)
	require.True(t, done.CompletedAt.Equal(now))

	reopened, err := uc.ChangeStatus(ctx, "u1", "t1", domain.StatusInProgress)
	require.NoError(t, err)
	require.Nil(t, reopened.CompletedAt, "leaving done clears the completion timestamp")
}

func TestChangeStatusRequiresAssigneeOrSupervisor(t *testing.T) {
	tasks := &taskRepoMock{}
	memberships := &membershipMock{}
	expectRole(memberships, "u2", domain.RoleMember)
	tasks.On("GetByID", mock.Anything, "t1").
		Return(&domain.Task{ID: "t1", OrgID: orgID, AssigneeID: strPtr("u1"), Status: domain.StatusTodo}, nil)

	uc := newUseCase(tasks, &replyRepoMock{}, memberships)
	_, err := uc.ChangeStatus(context.Background(), "u2", "t1", domain.StatusDone)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAssigneeCannotReassignOrReschedule(t *testing.T) {
	ctx := context.Background()
	tasks := &taskRepoMock{}
	memberships := &membershipMock{}
	expectRole(memberships, "u1", domain.RoleMember)
	tasks.On("GetByID", mock.Anything, "t1").
		Return(&domain.Task{ID: "t1", OrgID: orgID, AssigneeID: strPtr("u1"), Status: domain.StatusTodo}, nil)

	uc := newUseCase(tasks, &replyRepoMock{}, memberships)

	_, err := uc.Reassign(ctx, "u1", "t1", strPtr("u2"))
	require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))

	finish := time.Now().Add(24 * time.Hour)
	_, err = uc.SetExpectedFinish(ctx, "u1", "t1", &finish)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
}

func TestCreateRequiresSupervisor(t *testing.T) {
	tasks := &taskRepoMock{}
	memberships := &membershipMock{}
	expectRole(memberships, "u1", domain.RoleMember)

	uc := newUseCase(tasks, &replyRepoMock{}, memberships)
	_, err := uc.Create(context.Background(), "u1", &domain.Task{OrgID: orgID, ProjectID: "p1", Description: "x"})
	require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
}

func TestCreateReplyWithStatusTransition(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	tasks := &taskRepoMock{}
	replies := &replyRepoMock{}
	memberships := &membershipMock{}
	expectRole(memberships, "u1", domain.RoleMember)

	current := &domain.Task{ID: "t1", OrgID: orgID, AssigneeID: strPtr("u1"), Status: domain.StatusInProgress}
	tasks.On("GetByID", mock.Anything, "t1").Return(current, nil)
	tasks.On("Update", mock.Anything, mock.Anything).Return(nil)
	replies.On("Create", mock.Anything, mock.Anything).
		Return(&domain.Reply{ID: "r1", TaskID: "t1", AuthorID: "u1", Message: "finished"}, nil)

	uc := newUseCase(tasks, replies, memberships)
	uc.now = func() time.Time { return now }

	status := domain.StatusDone
	reply, err := uc.CreateReply(ctx, "u1", "t1", "finished", &status)
	require.NoError(t, err)
	require.Equal(t, "r1", reply.ID)
	require.Equal(t, domain.StatusDone, current.Status)
	require.NotNil(t, current.CompletedAt)
}

func TestReplyModificationGuards(t *testing.T) {
	ctx := context.Background()
	reply := &domain.Reply{ID: "r1", TaskID: "t1", AuthorID: "u1", Message: "hello"}
	task := &domain.Task{ID: "t1", OrgID: orgID, AssigneeID: strPtr("u1")}

	t.Run("non-author member is rejected", func(t *testing.T) {
		tasks := &taskRepoMock{}
		replies := &replyRepoMock{}
		memberships := &membershipMock{}
		expectRole(memberships, "u2", domain.RoleMember)
		replies.On("GetByID", mock.Anything, "r1").Return(reply, nil)
		tasks.On("GetByID", mock.Anything, "t1").Return(task, nil)

		uc := newUseCase(tasks, replies, memberships)
		_, err := uc.UpdateReply(ctx, "u2", "r1", "edited", nil)
		require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	})

	t.Run("supervisor may delete another author's reply", func(t *testing.T) {
		tasks := &taskRepoMock{}
		replies := &replyRepoMock{}
		memberships := &membershipMock{}
		expectRole(memberships, "boss", domain.RoleAdmin)
		replies.On("GetByID", mock.Anything, "r1").Return(reply, nil)
		tasks.On("GetByID", mock.Anything, "t1").Return(task, nil)
		replies.On("Delete", mock.Anything, "r1").Return(nil)

		uc := newUseCase(tasks, replies, memberships)
		require.NoError(t, uc.DeleteReply(ctx, "boss", "r1"))
		replies.AssertExpectations(t)
	})
}

func TestGetHidesTasksOutsideScope(t *testing.T) {
	tasks := &taskRepoMock{}
	memberships := &membershipMock{}
	expectRole(memberships, "u2", domain.RoleMember)
	tasks.On("GetByID", mock.Anything, "t1").
		Return(&domain.Task{ID: "t1", OrgID: orgID, AssigneeID: strPtr("u1")}, nil)

	uc := newUseCase(tasks, &replyRepoMock{}, memberships)
	_, err := uc.Get(context.Background(), "u2", "t1")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}
