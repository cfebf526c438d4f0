package repository

import (
	"context"
	"time"

	"github.com/taskdeck/backend/domain"
)

type WorkLogFilter struct {
	OrgID    string
	AuthorID string
	Status   domain.WorkLogStatus
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

type WorkLogRepository interface {
	GetByID(ctx context.Context, id string) (*domain.WorkLog, error)
	List(ctx context.Context, filter WorkLogFilter) ([]domain.WorkLog, error)
	Create(ctx context.Context, log *domain.WorkLog) (*domain.WorkLog, error)
	Update(ctx context.Context, log *domain.WorkLog) error
}
