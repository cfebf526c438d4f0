package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
	"github.com/taskdeck/backend/usecase"
)

type UseCase struct {
	tasks       repository.TaskRepository
	replies     repository.ReplyRepository
	memberships repository.MembershipRepository
	buffer      usecase.OperationBuffer
	logger      *zap.Logger
	now         func() time.Time
}

func New(
	tasks repository.TaskRepository,
	replies repository.ReplyRepository,
	memberships repository.MembershipRepository,
	buffer usecase.OperationBuffer,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:       tasks,
		replies:     replies,
		memberships: memberships,
		buffer:      buffer,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns tasks visible to the actor. Supervisors see the full
// organization set; everyone else is implicitly restricted to their own
// assignments. The restriction is a scope filter, not a rejection.
func (uc *UseCase) List(ctx context.Context, orgID, actorID string, filter repository.TaskFilter) ([]domain.Task, error) {
	role, err := usecase.ResolveRole(ctx, uc.memberships, orgID, actorID)
	if err != nil {
		return nil, err
	}

	filter.OrgID = orgID
	if !role.IsSupervisor() {
		filter.AssigneeID = actorID
	}
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, actorID, taskID string) (*domain.Task, error) {
	task, role, err := uc.loadTask(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	if !role.IsSupervisor() && !task.IsAssignee(actorID) {
		// outside the actor's visible scope reads as not found
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (uc *UseCase) Create(ctx context.Context, actorID string, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.OrgID == "" || task.ProjectID == "" {
		return nil, domain.ErrInvalidPayload
	}

	role, err := usecase.ResolveRole(ctx, uc.memberships, task.OrgID, actorID)
	if err != nil {
		return nil, err
	}
	if !role.IsSupervisor() {
		return nil, domain.NewError(domain.ErrCodeForbidden, "only a supervisor may create tasks")
	}

	if task.Status == "" {
		task.Status = domain.StatusTodo
	}
	if !task.Status.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown task status")
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, task) {
			return task, nil
		}
		return nil, err
	}
	return created, nil
}

// ChangeStatus moves a task through its lifecycle. The completion timestamp
// tracks the transition into and out of done; it is never derived from the
// creation time.
func (uc *UseCase) ChangeStatus(ctx context.Context, actorID, taskID string, newStatus domain.TaskStatus) (*domain.Task, error) {
	if !newStatus.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown task status")
	}

	task, role, err := uc.loadTask(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	if d := domain.CanChangeTaskStatus(actorID, role, task); !d.Allowed {
		return nil, d.Err()
	}

	uc.applyStatus(task, newStatus)
	return task, uc.updateTask(ctx, task)
}

func (uc *UseCase) Reassign(ctx context.Context, actorID, taskID string, assigneeID *string) (*domain.Task, error) {
	task, role, err := uc.loadTask(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	if d := domain.CanReassignTask(role); !d.Allowed {
		return nil, d.Err()
	}

	task.AssigneeID = assigneeID
	return task, uc.updateTask(ctx, task)
}

func (uc *UseCase) SetExpectedFinish(ctx context.Context, actorID, taskID string, finish *time.Time) (*domain.Task, error) {
	task, role, err := uc.loadTask(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	if d := domain.CanSetExpectedFinish(role); !d.Allowed {
		return nil, d.Err()
	}

	task.ExpectedFinish = finish
	return task, uc.updateTask(ctx, task)
}

func (uc *UseCase) Delete(ctx context.Context, actorID, taskID string) error {
	_, role, err := uc.loadTask(ctx, actorID, taskID)
	if err != nil {
		return err
	}
	if !role.IsSupervisor() {
		return domain.NewError(domain.ErrCodeForbidden, "only a supervisor may delete tasks")
	}
	return uc.tasks.Delete(ctx, taskID)
}

func (uc *UseCase) ListReplies(ctx context.Context, actorID, taskID string) ([]domain.Reply, error) {
	if _, err := uc.Get(ctx, actorID, taskID); err != nil {
		return nil, err
	}
	return uc.replies.ListByTask(ctx, taskID)
}

// CreateReply posts a progress update. A reply may carry a status transition,
// which is applied to the task under the same guard as a direct status change.
func (uc *UseCase) CreateReply(ctx context.Context, actorID, taskID, message string, newStatus *domain.TaskStatus) (*domain.Reply, error) {
	if message == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "reply message must not be empty")
	}

	task, role, err := uc.loadTask(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	if d := domain.CanCreateReply(actorID, role, task); !d.Allowed {
		return nil, d.Err()
	}

	if newStatus != nil {
		if !newStatus.Valid() {
			return nil, domain.NewError(domain.ErrCodeInvalid, "unknown task status")
		}
		if d := domain.CanChangeTaskStatus(actorID, role, task); !d.Allowed {
			return nil, d.Err()
		}
		uc.applyStatus(task, *newStatus)
		if err := uc.updateTask(ctx, task); err != nil {
			return nil, err
		}
	}

	reply := &domain.Reply{
		TaskID:    taskID,
		AuthorID:  actorID,
		Message:   message,
		NewStatus: newStatus,
	}

	created, err := uc.replies.Create(ctx, reply)
	if err != nil {
		if uc.shouldBufferReply(ctx, usecase.OperationCreate, reply) {
			return reply, nil
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) UpdateReply(ctx context.Context, actorID, replyID, message string, newStatus *domain.TaskStatus) (*domain.Reply, error) {
	if message == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "reply message must not be empty")
	}

	reply, role, err := uc.loadReply(ctx, actorID, replyID)
	if err != nil {
		return nil, err
	}
	if d := domain.CanModifyReply(actorID, role, reply); !d.Allowed {
		return nil, d.Err()
	}

	if newStatus != nil {
		if !newStatus.Valid() {
			return nil, domain.NewError(domain.ErrCodeInvalid, "unknown task status")
		}
		task, err := uc.tasks.GetByID(ctx, reply.TaskID)
		if err != nil {
			return nil, err
		}
		if d := domain.CanChangeTaskStatus(actorID, role, task); !d.Allowed {
			return nil, d.Err()
		}
		uc.applyStatus(task, *newStatus)
		if err := uc.updateTask(ctx, task); err != nil {
			return nil, err
		}
	}

	reply.Message = message
	reply.NewStatus = newStatus
	if err := uc.replies.Update(ctx, reply); err != nil {
		if uc.shouldBufferReply(ctx, usecase.OperationUpdate, reply) {
			return reply, nil
		}
		return nil, err
	}
	return reply, nil
}

func (uc *UseCase) DeleteReply(ctx context.Context, actorID, replyID string) error {
	reply, role, err := uc.loadReply(ctx, actorID, replyID)
	if err != nil {
		return err
	}
	if d := domain.CanModifyReply(actorID, role, reply); !d.Allowed {
		return d.Err()
	}
	return uc.replies.Delete(ctx, replyID)
}

func (uc *UseCase) loadTask(ctx context.Context, actorID, taskID string) (*domain.Task, domain.Role, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, "", err
	}
	role, err := usecase.ResolveRole(ctx, uc.memberships, task.OrgID, actorID)
	if err != nil {
		return nil, "", err
	}
	return task, role, nil
}

func (uc *UseCase) loadReply(ctx context.Context, actorID, replyID string) (*domain.Reply, domain.Role, error) {
	reply, err := uc.replies.GetByID(ctx, replyID)
	if err != nil {
		return nil, "", err
	}
	task, err := uc.tasks.GetByID(ctx, reply.TaskID)
	if err != nil {
		return nil, "", err
	}
	role, err := usecase.ResolveRole(ctx, uc.memberships, task.OrgID, actorID)
	if err != nil {
		return nil, "", err
	}
	return reply, role, nil
}

func (uc *UseCase) applyStatus(task *domain.Task, newStatus domain.TaskStatus) {
	wasDone := task.IsDone()
	task.Status = newStatus
	switch {
	case newStatus == domain.StatusDone && !wasDone:
		completed := uc.now()
		task.CompletedAt = &completed
	case newStatus != domain.StatusDone:
		task.CompletedAt = nil
	}
}

func (uc *UseCase) updateTask(ctx context.Context, task *domain.Task) error {
	if err := uc.tasks.Update(ctx, task); err != nil {
		if err == domain.ErrTaskNotFound {
			return err
		}
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, task) {
			return nil
		}
		return err
	}
	return nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, task *domain.Task) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTask(ctx, operation, task); err != nil {
		uc.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("task operation buffered", zap.String("operation", operation))
	return true
}

func (uc *UseCase) shouldBufferReply(ctx context.Context, operation string, reply *domain.Reply) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferReply(ctx, operation, reply); err != nil {
		uc.logger.Error("failed to buffer reply operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("reply operation buffered", zap.String("operation", operation))
	return true
}
