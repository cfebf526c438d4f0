package worklog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
	"github.com/taskdeck/backend/usecase"
)

type UseCase struct {
	logs        repository.WorkLogRepository
	memberships repository.MembershipRepository
	logger      *zap.Logger
	now         func() time.Time
}

func New(logs repository.WorkLogRepository, memberships repository.MembershipRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		logs:        logs,
		memberships: memberships,
		logger:      logger,
		now:         time.Now,
	}
}

// Submit files a daily work log for the actor. Any active member may submit;
// the log starts its life pending review.
func (uc *UseCase) Submit(ctx context.Context, actorID string, log *domain.WorkLog) (*domain.WorkLog, error) {
	if log == nil || log.OrgID == "" || log.Content == "" {
		return nil, domain.ErrInvalidPayload
	}
	if _, err := usecase.ResolveRole(ctx, uc.memberships, log.OrgID, actorID); err != nil {
		return nil, err
	}

	log.AuthorID = actorID
	log.Status = domain.WorkLogPending
	log.ReviewerID = nil
	log.ReviewNote = ""
	if log.LogDate.IsZero() {
		log.LogDate = uc.now()
	}
	return uc.logs.Create(ctx, log)
}

// Edit rewrites a pending log's content; reviewed logs are immutable.
func (uc *UseCase) Edit(ctx context.Context, actorID, logID, content string) (*domain.WorkLog, error) {
	if content == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "work log content must not be empty")
	}

	log, err := uc.logs.GetByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	if d := domain.CanEditWorkLog(actorID, log); !d.Allowed {
		return nil, d.Err()
	}

	log.Content = content
	if err := uc.logs.Update(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// Review settles a pending log. Supervisors only, never on their own log.
func (uc *UseCase) Review(ctx context.Context, actorID, logID string, approve bool, note string) (*domain.WorkLog, error) {
	log, err := uc.logs.GetByID(ctx, logID)
	if err != nil {
		return nil, err
	}

	role, err := usecase.ResolveRole(ctx, uc.memberships, log.OrgID, actorID)
	if err != nil {
		return nil, err
	}
	if d := domain.CanReviewWorkLog(actorID, role, log); !d.Allowed {
		return nil, d.Err()
	}
	if !log.IsPending() {
		return nil, domain.NewError(domain.ErrCodeConflict, "work log has already been reviewed")
	}

	if approve {
		log.Status = domain.WorkLogApproved
	} else {
		log.Status = domain.WorkLogRejected
	}
	log.ReviewerID = &actorID
	log.ReviewNote = note

	if err := uc.logs.Update(ctx, log); err != nil {
		return nil, err
	}

	uc.logger.Info("work log reviewed",
		zap.String("log_id", log.ID),
		zap.String("status", string(log.Status)),
		zap.String("reviewer", actorID))
	return log, nil
}

// List scopes results by effective role: members see their own logs only.
func (uc *UseCase) List(ctx context.Context, orgID, actorID string, filter repository.WorkLogFilter) ([]domain.WorkLog, error) {
	role, err := usecase.ResolveRole(ctx, uc.memberships, orgID, actorID)
	if err != nil {
		return nil, err
	}

	filter.OrgID = orgID
	if !role.IsSupervisor() {
		filter.AuthorID = actorID
	}
	return uc.logs.List(ctx, filter)
}
