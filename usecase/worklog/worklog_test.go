package worklog

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

type workLogRepoMock struct{ mock.Mock }

var _ repository.WorkLogRepository = (*workLogRepoMock)(nil)

func (m *workLogRepoMock) GetByID(ctx context.Context, id string) (*domain.WorkLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}

func (m *workLogRepoMock) List(ctx context.Context, filter repository.WorkLogFilter) ([]domain.WorkLog, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkLog), args.Error(1)
}

func (m *workLogRepoMock) Create(ctx context.Context, log *domain.WorkLog) (*domain.WorkLog, error) {
	args := m.Called(ctx, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}

func (m *workLogRepoMock) Update(ctx context.Context, log *domain.WorkLog) error {
	args := m.Called(ctx, log)
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

func pendingLog(id, author string) *domain.WorkLog {
	return &domain.WorkLog{ID: id, OrgID: orgID, AuthorID: author, Content: "daily", Status: domain.WorkLogPending}
}

func TestSubmitStartsPending(t *testing.T) {
	logs := &workLogRepoMock{}
	memberships := &membershipMock{}
	expectRole(memberships, "u1", domain.RoleMember)
	logs.On("Create", mock.Anything, mock.Anything).Return(pendingLog("w1", "u1"), nil)

	uc := New(logs, memberships, zap.NewNop())
	created, err := uc.Submit(context.Background(), "u1", &domain.WorkLog{OrgID: orgID, Content: "daily"})
	require.NoError(t, err)
	require.Equal(t, domain.WorkLogPending, created.Status)
}

func TestReviewGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("supervisor approves another member's log", func(t *testing.T) {
		logs := &workLogRepoMock{}
		memberships := &membershipMock{}
		expectRole(memberships, "boss", domain.RoleManager)
		logs.On("GetByID", mock.Anything, "w1").Return(pendingLog("w1", "u1"), nil)
		logs.On("Update", mock.Anything, mock.Anything).Return(nil)

		uc := New(logs, memberships, zap.NewNop())
		reviewed, err := uc.Review(ctx, "boss", "w1", true, "looks good")
		require.NoError(t, err)
		require.Equal(t, domain.WorkLogApproved, reviewed.Status)
		require.Equal(t, "boss", *reviewed.ReviewerID)
	})

	t.Run("self approval is rejected", func(t *testing.T) {
		logs := &workLogRepoMock{}
		memberships := &membershipMock{}
		expectRole(memberships, "boss", domain.RoleAdmin)
		logs.On("GetByID", mock.Anything, "w1").Return(pendingLog("w1", "boss"), nil)

		uc := New(logs, memberships, zap.NewNop())
		_, err := uc.Review(ctx, "boss", "w1", true, "")
		require.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
		logs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("member cannot review", func(t *testing.T) {
		logs := &workLogRepoMock{}
		memberships := &membershipMock{}
		expectRole(memberships, "u2", domain.RoleMember)
		logs.On("GetByID", mock.Anything, "w1").Return(pendingLog("w1", "u1"), nil)

		uc := New(logs, memberships, zap.NewNop())
		_, err := uc.Review(ctx, "u2", "w1", false, "")
		require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
	})

	t.Run("double review is rejected", func(t *testing.T) {
		logs := &workLogRepoMock{}
		memberships := &membershipMock{}
		expectRole(memberships, "boss", domain.RoleManager)
		approved := pendingLog("w1", "u1")
		approved.Status = domain.WorkLogApproved
		logs.On("GetByID", mock.Anything, "w1").Return(approved, nil)

		uc := New(logs, memberships, zap.NewNop())
		_, err := uc.Review(ctx, "boss", "w1", false, "")
		require.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
	})
}

func TestEditOnlyWhilePending(t *testing.T) {
	ctx := context.Background()
	logs := &workLogRepoMock{}
	memberships := &membershipMock{}

	reviewed := pendingLog("w1", "u1")
	reviewed.Status = domain.WorkLogRejected
	logs.On("GetByID", mock.Anything, "w1").Return(reviewed, nil)

	uc := New(logs, memberships, zap.NewNop())
	_, err := uc.Edit(ctx, "u1", "w1", "rewritten")
	require.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
}

func TestListScopesMembersToOwnLogs(t *testing.T) {
	logs := &workLogRepoMock{}
	memberships := &membershipMock{}
	expectRole(memberships, "u1", domain.RoleMember)
	logs.On("List", mock.Anything, repository.WorkLogFilter{OrgID: orgID, AuthorID: "u1"}).
		Return([]domain.WorkLog{*pendingLog("w1", "u1")}, nil)

	uc := New(logs, memberships, zap.NewNop())
	result, err := uc.List(context.Background(), orgID, "u1", repository.WorkLogFilter{})
	require.NoError(t, err)
	require.Len(t, result, 1)
	logs.AssertExpectations(t)
}

func TestSubmitDefaultsLogDate(t *testing.T) {
	logs := &workLogRepoMock{}
	memberships := &membershipMock{}
	expectRole(memberships, "u1", domain.RoleMember)

	var captured *domain.WorkLog
	logs.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*domain.WorkLog) }).
		Return(pendingLog("w1", "u1"), nil)

	uc := New(logs, memberships, zap.NewNop())
	frozen := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return frozen }

	_, err := uc.Submit(context.Background(), "u1", &domain.WorkLog{OrgID: orgID, Content: "daily"})
	require.NoError(t, err)
	require.Equal(t, frozen, captured.LogDate)
}

func TestSubmitWithoutProject(t *testing.T) {
	logs := &workLogRepoMock{}
	memberships := &membershipMock{}
	expectRole(memberships, "u1", domain.RoleMember)

	var captured *domain.WorkLog
	logs.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*domain.WorkLog) }).
		Return(pendingLog("w1", "u1"), nil)

	uc := New(logs, memberships, zap.NewNop())
	_, err := uc.Submit(context.Background(), "u1", &domain.WorkLog{OrgID: orgID, Content: "daily"})
	require.NoError(t, err)
	require.Nil(t, captured.ProjectID)
}
