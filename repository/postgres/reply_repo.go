package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

type replyRepository struct {
	pool *pgxpool.Pool
}

// NewReplyRepository returns a Postgres-backed implementation of ReplyRepository.
func NewReplyRepository(pool *pgxpool.Pool) repository.ReplyRepository {
	return &replyRepository{pool: pool}
}

func (r *replyRepository) GetByID(ctx context.Context, id string) (*domain.Reply, error) {
	const query = `
	SELECT id, task_id, author_id, message, new_status, created_at, updated_at
	FROM task_replies
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanReply(row)
}

func (r *replyRepository) ListByTask(ctx context.Context, taskID string) ([]domain.Reply, error) {
	const query = `
	SELECT id, task_id, author_id, message, new_status, created_at, updated_at
	FROM task_replies
	WHERE task_id = $1
	ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var replies []domain.Reply
	for rows.Next() {
		reply, err := scanReply(rows)
		if err != nil {
			return nil, err
		}
		replies = append(replies, *reply)
	}
	return replies, rows.Err()
}

func (r *replyRepository) Create(ctx context.Context, reply *domain.Reply) (*domain.Reply, error) {
	if reply == nil {
		return nil, domain.ErrInvalidPayload
	}
	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}

	var status interface{}
	if reply.NewStatus != nil {
		status = string(*reply.NewStatus)
	}

	const query = `
	INSERT INTO task_replies (id, task_id, author_id, message, new_status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		reply.ID,
		reply.TaskID,
		reply.AuthorID,
		reply.Message,
		status,
	).Scan(&reply.CreatedAt, &reply.UpdatedAt); err != nil {
		return nil, err
	}

	return reply, nil
}

func (r *replyRepository) Update(ctx context.Context, reply *domain.Reply) error {
	if reply == nil {
		return domain.ErrInvalidPayload
	}

	var status interface{}
	if reply.NewStatus != nil {
		status = string(*reply.NewStatus)
	}

	const query = `
	UPDATE task_replies
	SET message = $2, new_status = $3, updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query, reply.ID, reply.Message, status).Scan(&reply.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrReplyNotFound
		}
		return err
	}

	return nil
}

func (r *replyRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM task_replies WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReplyNotFound
	}
	return nil
}

func scanReply(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Reply, error) {
	var reply domain.Reply
	var status *string

	if err := row.Scan(
		&reply.ID,
		&reply.TaskID,
		&reply.AuthorID,
		&reply.Message,
		&status,
		&reply.CreatedAt,
		&reply.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReplyNotFound
		}
		return nil, err
	}

	if status != nil {
		s := domain.TaskStatus(*status)
		reply.NewStatus = &s
	}

	return &reply, nil
}
