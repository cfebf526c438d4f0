package dashboard

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

type projectRepoMock struct{ mock.Mock }

var _ repository.ProjectRepository = (*projectRepoMock)(nil)

func (m *projectRepoMock) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *projectRepoMock) List(ctx context.Context, orgID string) ([]domain.Project, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *projectRepoMock) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

// memoCache is an in-process stand-in for the Redis-backed name cache.
type memoCache struct {
	values map[string]string
	hits   int
}

func newMemoCache() *memoCache { return &memoCache{values: make(map[string]string)} }

func (c *memoCache) Get(_ context.Context, projectID string) (string, bool) {
	name, ok := c.values[projectID]
	if ok {
		c.hits++
	}
	return name, ok
}

func (c *memoCache) Set(_ context.Context, projectID, name string) error {
	c.values[projectID] = name
	return nil
}

const orgID = "org1"

func expectRole(repo *membershipMock, userID string, role domain.Role) {
	repo.On("GetActive", mock.Anything, orgID, userID).
		Return([]domain.Membership{{OrgID: orgID, UserID: userID, Role: role, IsActive: true}}, nil)
}

func strPtr(s string) *string { return &s }

func tsPtr(t time.Time) *time.Time { return &t }

func TestOverviewPartitionsAndTopOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	start, end := domain.DayBounds(now)

	tasks := &taskRepoMock{}
	memberships := &membershipMock{}
	projects := &projectRepoMock{}
	cache := newMemoCache()
	expectRole(memberships, "boss", domain.RoleAdmin)

	all := []domain.Task{
		{ID: "late2", OrgID: orgID, ProjectID: "p1", Status: domain.StatusTodo, ExpectedFinish: tsPtr(now.AddDate(0, 0, -2))},
		{ID: "late1", OrgID: orgID, ProjectID: "p1", Status: domain.StatusInProgress, ExpectedFinish: tsPtr(now.Add(-time.Hour))},
		{ID: "today", OrgID: orgID, ProjectID: "p2", Status: domain.StatusTodo, ExpectedFinish: tsPtr(now.Add(2 * time.Hour))},
		{ID: "week", OrgID: orgID, ProjectID: "p2", Status: domain.StatusTodo, ExpectedFinish: tsPtr(now.AddDate(0, 0, 3))},
		{ID: "done", OrgID: orgID, ProjectID: "p1", Status: domain.StatusDone, ExpectedFinish: tsPtr(now.AddDate(0, 0, -5)), CompletedAt: tsPtr(now.Add(-time.Hour))},
	}
	tasks.On("List", mock.Anything, repository.TaskFilter{OrgID: orgID}).Return(all, nil)
	tasks.On("ListCompletedBetween", mock.Anything, orgID, start, end).
		Return([]domain.Task{all[4]}, nil)
	projects.On("GetByID", mock.Anything, "p1").Return(&domain.Project{ID: "p1", Name: "Website"}, nil)
	projects.On("GetByID", mock.Anything, "p2").Return(&domain.Project{ID: "p2", Name: "Mobile"}, nil)

	uc := New(tasks, memberships, projects, cache, zap.NewNop())
	uc.now = func() time.Time { return now }

	overview, err := uc.Overview(context.Background(), orgID, "boss")
	require.NoError(t, err)

	require.Equal(t, domain.RoleAdmin, overview.Role)
	require.Len(t, overview.Partition.Overdue, 2)
	require.Len(t, overview.Partition.DueToday, 1)
	require.Len(t, overview.Partition.DueThisWeek, 1)
	require.Len(t, overview.Partition.InProgress, 1)
	require.Len(t, overview.Partition.Completed, 1)

	// ascending by expected finish
	require.Equal(t, "late2", overview.TopOverdue[0].ID)
	require.Equal(t, "late1", overview.TopOverdue[1].ID)

	require.Len(t, overview.CompletedToday, 1)
	require.Equal(t, map[string]string{"p1": "Website", "p2": "Mobile"}, overview.ProjectNames)

	// each project resolved once, then memoized
	projects.AssertNumberOfCalls(t, "GetByID", 2)
	require.Equal(t, "Website", cache.values["p1"])
}

func TestOverviewMemberScope(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	start, end := domain.DayBounds(now)

	tasks := &taskRepoMock{}
	memberships := &membershipMock{}
	projects := &projectRepoMock{}
	expectRole(memberships, "u1", domain.RoleMember)

	tasks.On("List", mock.Anything, repository.TaskFilter{OrgID: orgID, AssigneeID: "u1"}).
		Return([]domain.Task{
			{ID: "mine", OrgID: orgID, ProjectID: "p1", AssigneeID: strPtr("u1"), Status: domain.StatusTodo, ExpectedFinish: tsPtr(now.AddDate(0, 0, -1))},
		}, nil)
	tasks.On("ListCompletedBetween", mock.Anything, orgID, start, end).
		Return([]domain.Task{
			{ID: "theirs", OrgID: orgID, AssigneeID: strPtr("u2"), Status: domain.StatusDone, CompletedAt: tsPtr(now)},
			{ID: "mine-done", OrgID: orgID, AssigneeID: strPtr("u1"), Status: domain.StatusDone, CompletedAt: tsPtr(now)},
		}, nil)
	projects.On("GetByID", mock.Anything, "p1").Return(&domain.Project{ID: "p1", Name: "Website"}, nil)

	uc := New(tasks, memberships, projects, newMemoCache(), zap.NewNop())
	uc.now = func() time.Time { return now }

	overview, err := uc.Overview(context.Background(), orgID, "u1")
	require.NoError(t, err)

	require.Len(t, overview.Partition.Overdue, 1)
	require.Len(t, overview.CompletedToday, 1, "a member never sees other assignees' completions")
	require.Equal(t, "mine-done", overview.CompletedToday[0].ID)
}

func TestOverviewProjectNameFallsBackToRawID(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	start, end := domain.DayBounds(now)

	tasks := &taskRepoMock{}
	memberships := &membershipMock{}
	projects := &projectRepoMock{}
	expectRole(memberships, "boss", domain.RoleAdmin)

	tasks.On("List", mock.Anything, repository.TaskFilter{OrgID: orgID}).
		Return([]domain.Task{{ID: "t1", OrgID: orgID, ProjectID: "ghost", Status: domain.StatusTodo}}, nil)
	tasks.On("ListCompletedBetween", mock.Anything, orgID, start, end).
		Return([]domain.Task{}, nil)
	projects.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrProjectNotFound)

	uc := New(tasks, memberships, projects, newMemoCache(), zap.NewNop())
	uc.now = func() time.Time { return now }

	overview, err := uc.Overview(context.Background(), orgID, "boss")
	require.NoError(t, err, "missing decoration data must not fail the overview")
	require.Equal(t, "ghost", overview.ProjectNames["ghost"])
}
