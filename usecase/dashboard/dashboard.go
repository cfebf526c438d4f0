package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
	"github.com/taskdeck/backend/usecase"
)

// overdueDisplayLimit caps the "first N overdue" list on the overview.
const overdueDisplayLimit = 8

type UseCase struct {
	tasks       repository.TaskRepository
	memberships repository.MembershipRepository
	projects    repository.ProjectRepository
	nameCache   repository.ProjectNameCache
	logger      *zap.Logger
	now         func() time.Time
}

func New(
	tasks repository.TaskRepository,
	memberships repository.MembershipRepository,
	projects repository.ProjectRepository,
	nameCache repository.ProjectNameCache,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:       tasks,
		memberships: memberships,
		projects:    projects,
		nameCache:   nameCache,
		logger:      logger,
		now:         time.Now,
	}
}

// Overview is the dashboard payload: due partitions, the first few overdue
// items, and today's completions, all computed against one reference instant.
type Overview struct {
	Role           domain.Role         `json:"role"`
	GeneratedAt    time.Time           `json:"generated_at"`
	Partition      domain.DuePartition `json:"partition"`
	TopOverdue     []domain.Task       `json:"top_overdue"`
	CompletedToday []domain.Task       `json:"completed_today"`
	ProjectNames   map[string]string   `json:"project_names"`
}

func (uc *UseCase) Overview(ctx context.Context, orgID, actorID string) (*Overview, error) {
	role, err := usecase.ResolveRole(ctx, uc.memberships, orgID, actorID)
	if err != nil {
		return nil, err
	}

	filter := repository.TaskFilter{OrgID: orgID}
	if !role.IsSupervisor() {
		filter.AssigneeID = actorID
	}
	tasks, err := uc.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	// fixed reference instant: every classification in the overview compares
	// against the same now
	now := uc.now()
	partition := domain.PartitionByDue(now, tasks)

	start, end := domain.DayBounds(now)
	completed, err := uc.tasks.ListCompletedBetween(ctx, orgID, start, end)
	if err != nil {
		return nil, err
	}
	if !role.IsSupervisor() {
		completed = filterByAssignee(completed, actorID)
	}

	return &Overview{
		Role:           role,
		GeneratedAt:    now,
		Partition:      partition,
		TopOverdue:     domain.TopByExpectedFinish(partition.Overdue, overdueDisplayLimit),
		CompletedToday: completed,
		ProjectNames:   uc.projectNames(ctx, tasks),
	}, nil
}

// projectNames decorates task lists with project display names. Lookups go
// through the memoizing cache; failures fall back to the raw project id so a
// missing decoration never blocks the overview.
func (uc *UseCase) projectNames(ctx context.Context, tasks []domain.Task) map[string]string {
	names := make(map[string]string)
	for _, t := range tasks {
		if t.ProjectID == "" {
			continue
		}
		if _, seen := names[t.ProjectID]; seen {
			continue
		}
		names[t.ProjectID] = uc.lookupProjectName(ctx, t.ProjectID)
	}
	return names
}

func (uc *UseCase) lookupProjectName(ctx context.Context, projectID string) string {
	if uc.nameCache != nil {
		if name, ok := uc.nameCache.Get(ctx, projectID); ok {
			return name
		}
	}

	project, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		uc.logger.Debug("project name lookup failed, using raw id",
			zap.String("project_id", projectID),
			zap.Error(err))
		return projectID
	}

	if uc.nameCache != nil {
		if err := uc.nameCache.Set(ctx, projectID, project.Name); err != nil {
			uc.logger.Debug("project name cache write failed", zap.Error(err))
		}
	}
	return project.Name
}

func filterByAssignee(tasks []domain.Task, userID string) []domain.Task {
	var out []domain.Task
	for _, t := range tasks {
		if t.IsAssignee(userID) {
			out = append(out, t)
		}
	}
	return out
}
