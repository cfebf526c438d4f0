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

type membershipRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository returns a Postgres-backed implementation of MembershipRepository.
func NewMembershipRepository(pool *pgxpool.Pool) repository.MembershipRepository {
	return &membershipRepository{pool: pool}
}

const membershipColumns = `id, org_id, user_id, role, is_active, created_at, updated_at`

func (r *membershipRepository) GetActive(ctx context.Context, orgID, userID string) ([]domain.Membership, error) {
	query := `
	SELECT ` + membershipColumns + `
	FROM memberships
	WHERE org_id = $1 AND user_id = $2 AND is_active = TRUE
	`
	rows, err := r.pool.Query(ctx, query, orgID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMemberships(rows)
}

func (r *membershipRepository) Get(ctx context.Context, orgID, userID string) (*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE org_id = $1 AND user_id = $2`
	row := r.pool.QueryRow(ctx, query, orgID, userID)
	return scanMembership(row)
}

func (r *membershipRepository) List(ctx context.Context, orgID string) ([]domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE org_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMemberships(rows)
}

func (r *membershipRepository) CountActiveAdmins(ctx context.Context, orgID string) (int, error) {
	const query = `SELECT COUNT(*) FROM memberships WHERE org_id = $1 AND role = 'admin' AND is_active = TRUE`
	var count int
	if err := r.pool.QueryRow(ctx, query, orgID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *membershipRepository) SetRole(ctx context.Context, orgID, userID string, role domain.Role) error {
	const query = `
	UPDATE memberships
	SET role = $3, updated_at = NOW()
	WHERE org_id = $1 AND user_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, orgID, userID, string(role))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

func (r *membershipRepository) SetActive(ctx context.Context, orgID, userID string, active bool) error {
	const query = `
	UPDATE memberships
	SET is_active = $3, updated_at = NOW()
	WHERE org_id = $1 AND user_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, orgID, userID, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

func (r *membershipRepository) Create(ctx context.Context, membership *domain.Membership) (*domain.Membership, error) {
	if membership == nil {
		return nil, domain.ErrInvalidPayload
	}
	if membership.ID == "" {
		membership.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO memberships (id, org_id, user_id, role, is_active)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		membership.ID,
		membership.OrgID,
		membership.UserID,
		string(membership.Role),
		membership.IsActive,
	).Scan(&membership.CreatedAt, &membership.UpdatedAt); err != nil {
		return nil, err
	}

	return membership, nil
}

func scanMembership(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Membership, error) {
	var m domain.Membership
	var role string

	if err := row.Scan(
		&m.ID,
		&m.OrgID,
		&m.UserID,
		&role,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}

	m.Role = domain.Role(role)
	return &m, nil
}

func collectMemberships(rows pgx.Rows) ([]domain.Membership, error) {
	var memberships []domain.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, *m)
	}
	return memberships, rows.Err()
}
