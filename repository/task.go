package repository

import (
	"context"
	"time"

	"github.com/taskdeck/backend/domain"
)

// TaskFilter restricts a task listing. AssigneeID is set by the caller when
// the actor's effective role limits them to their own assignments.
type TaskFilter struct {
	OrgID      string
	ProjectID  string
	AssigneeID string
	Status     domain.TaskStatus
	Limit      int
	Offset     int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	ListCompletedBetween(ctx context.Context, orgID string, from, to time.Time) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
