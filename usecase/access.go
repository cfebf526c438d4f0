package usecase

import (
	"context"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

// ResolveRole derives the actor's effective role in one organization from
// their active memberships. A user with no active membership gets
// ErrNotOrgMember, which is distinct from holding the member role.
func ResolveRole(ctx context.Context, memberships repository.MembershipRepository, orgID, userID string) (domain.Role, error) {
	active, err := memberships.GetActive(ctx, orgID, userID)
	if err != nil {
		return "", err
	}
	role, ok := domain.EffectiveRole(active)
	if !ok {
		return "", domain.ErrNotOrgMember
	}
	return role, nil
}
