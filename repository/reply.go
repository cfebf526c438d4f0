package repository

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

type ReplyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reply, error)
	ListByTask(ctx context.Context, taskID string) ([]domain.Reply, error)
	Create(ctx context.Context, reply *domain.Reply) (*domain.Reply, error)
	Update(ctx context.Context, reply *domain.Reply) error
	Delete(ctx context.Context, id string) error
}
