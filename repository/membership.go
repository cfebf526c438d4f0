package repository

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

type MembershipRepository interface {
	// GetActive returns only active memberships for the user within one
	// organization; role resolution works exclusively from this set.
	GetActive(ctx context.Context, orgID, userID string) ([]domain.Membership, error)
	Get(ctx context.Context, orgID, userID string) (*domain.Membership, error)
	List(ctx context.Context, orgID string) ([]domain.Membership, error)
	// CountActiveAdmins backs the sole-admin guard; it always reads the
	// server-held source of truth rather than any cached view.
	CountActiveAdmins(ctx context.Context, orgID string) (int, error)
	SetRole(ctx context.Context, orgID, userID string, role domain.Role) error
	SetActive(ctx context.Context, orgID, userID string, active bool) error
	Create(ctx context.Context, membership *domain.Membership) (*domain.Membership, error)
}
