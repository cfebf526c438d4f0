package repository

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, orgID string) ([]domain.Project, error)
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
}

// ProjectNameCache memoizes project id to display name so dashboards do not
// refetch projects on every render. A miss is not an error.
type ProjectNameCache interface {
	Get(ctx context.Context, projectID string) (string, bool)
	Set(ctx context.Context, projectID, name string) error
}
