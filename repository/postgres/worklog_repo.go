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

type workLogRepository struct {
	pool *pgxpool.Pool
}

// NewWorkLogRepository returns a Postgres-backed implementation of WorkLogRepository.
func NewWorkLogRepository(pool *pgxpool.Pool) repository.WorkLogRepository {
	return &workLogRepository{pool: pool}
}

const workLogColumns = `id, org_id, project_id, author_id, log_date, content, status, reviewer_id, review_note, created_at, updated_at`

func (r *workLogRepository) GetByID(ctx context.Context, id string) (*domain.WorkLog, error) {
	query := `SELECT ` + workLogColumns + ` FROM work_logs WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanWorkLog(row)
}

func (r *workLogRepository) List(ctx context.Context, filter repository.WorkLogFilter) ([]domain.WorkLog, error) {
	query := `
	SELECT ` + workLogColumns + `
	FROM work_logs
	WHERE org_id = $1
	  AND ($2 = '' OR author_id = $2)
	  AND ($3 = '' OR status = $3)
	  AND ($4::timestamptz IS NULL OR log_date >= $4)
	  AND ($5::timestamptz IS NULL OR log_date <= $5)
	ORDER BY log_date DESC
	LIMIT $6 OFFSET $7
	`
	var from, to interface{}
	if !filter.From.IsZero() {
		from = filter.From
	}
	if !filter.To.IsZero() {
		to = filter.To
	}

	rows, err := r.pool.Query(ctx, query,
		filter.OrgID,
		filter.AuthorID,
		string(filter.Status),
		from,
		to,
		clampLimit(filter.Limit),
		filter.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.WorkLog
	for rows.Next() {
		log, err := scanWorkLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *log)
	}
	return logs, rows.Err()
}

func (r *workLogRepository) Create(ctx context.Context, log *domain.WorkLog) (*domain.WorkLog, error) {
	if log == nil {
		return nil, domain.ErrInvalidPayload
	}
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.Status == "" {
		log.Status = domain.WorkLogPending
	}

	const query = `
	INSERT INTO work_logs (id, org_id, project_id, author_id, log_date, content, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		log.ID,
		log.OrgID,
		nullString(log.ProjectID),
		log.AuthorID,
		log.LogDate,
		log.Content,
		string(log.Status),
	).Scan(&log.CreatedAt, &log.UpdatedAt); err != nil {
		return nil, err
	}

	return log, nil
}

func (r *workLogRepository) Update(ctx context.Context, log *domain.WorkLog) error {
	if log == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE work_logs
	SET content = $2,
		status = $3,
		reviewer_id = $4,
		review_note = $5,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		log.ID,
		log.Content,
		string(log.Status),
		nullString(log.ReviewerID),
		log.ReviewNote,
	).Scan(&log.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrWorkLogNotFound
		}
		return err
	}

	return nil
}

func scanWorkLog(row interface {
	Scan(dest ...interface{}) error
}) (*domain.WorkLog, error) {
	var log domain.WorkLog
	var (
		status   string
		project  *string
		reviewer *string
	)

	if err := row.Scan(
		&log.ID,
		&log.OrgID,
		&project,
		&log.AuthorID,
		&log.LogDate,
		&log.Content,
		&status,
		&reviewer,
		&log.ReviewNote,
		&log.CreatedAt,
		&log.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkLogNotFound
		}
		return nil, err
	}

	log.Status = domain.WorkLogStatus(status)
	log.ProjectID = project
	log.ReviewerID = reviewer

	return &log, nil
}
