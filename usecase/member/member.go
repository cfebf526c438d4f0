package member

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
	"github.com/taskdeck/backend/usecase"
)

type UseCase struct {
	memberships repository.MembershipRepository
	logger      *zap.Logger
}

func New(memberships repository.MembershipRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		memberships: memberships,
		logger:      logger,
	}
}

func (uc *UseCase) List(ctx context.Context, orgID, actorID string) ([]domain.Membership, error) {
	role, err := usecase.ResolveRole(ctx, uc.memberships, orgID, actorID)
	if err != nil {
		return nil, err
	}
	if !role.IsSupervisor() {
		return nil, domain.NewError(domain.ErrCodeForbidden, "listing members requires manager role or above")
	}
	return uc.memberships.List(ctx, orgID)
}

// SetRole changes a member's role after evaluating the guards against the
// current server-held membership state. Guard denials carry the exact reason
// for the caller to display.
func (uc *UseCase) SetRole(ctx context.Context, orgID, actorID, targetUserID string, newRole domain.Role) (*domain.Membership, error) {
	actorRole, err := usecase.ResolveRole(ctx, uc.memberships, orgID, actorID)
	if err != nil {
		return nil, err
	}

	target, err := uc.memberships.Get(ctx, orgID, targetUserID)
	if err != nil {
		return nil, err
	}

	activeAdmins, err := uc.memberships.CountActiveAdmins(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if d := domain.CanChangeMemberRole(actorRole, target, newRole, activeAdmins); !d.Allowed {
		uc.logger.Info("role change rejected",
			zap.String("org_id", orgID),
			zap.String("target", targetUserID),
			zap.String("reason", d.Reason))
		return nil, d.Err()
	}

	if err := uc.memberships.SetRole(ctx, orgID, targetUserID, newRole); err != nil {
		return nil, err
	}

	target.Role = newRole
	return target, nil
}

// SetActive toggles a membership. Self-deactivation and deactivating the
// sole active admin are rejected before anything is written.
func (uc *UseCase) SetActive(ctx context.Context, orgID, actorID, targetUserID string, active bool) (*domain.Membership, error) {
	actorRole, err := usecase.ResolveRole(ctx, uc.memberships, orgID, actorID)
	if err != nil {
		return nil, err
	}

	target, err := uc.memberships.Get(ctx, orgID, targetUserID)
	if err != nil {
		return nil, err
	}

	activeAdmins, err := uc.memberships.CountActiveAdmins(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if d := domain.CanSetMemberActive(actorID, actorRole, target, active, activeAdmins); !d.Allowed {
		uc.logger.Info("activation change rejected",
			zap.String("org_id", orgID),
			zap.String("target", targetUserID),
			zap.String("reason", d.Reason))
		return nil, d.Err()
	}

	if err := uc.memberships.SetActive(ctx, orgID, targetUserID, active); err != nil {
		return nil, err
	}

	target.IsActive = active
	return target, nil
}
