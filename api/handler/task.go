package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/pkg/httpcontext"
	"github.com/taskdeck/backend/repository"
	taskUC "github.com/taskdeck/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks visible to the actor
// @Tags tasks
// @Router /api/v1/orgs/{org}/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	orgID := h.pathValue(ctx, "org")
	if orgID == "" {
		return
	}

	filter := repository.TaskFilter{
		ProjectID: string(ctx.QueryArgs().Peek("project_id")),
		Status:    domain.TaskStatus(ctx.QueryArgs().Peek("status")),
		Limit:     parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:    parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, orgID, actorID, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/orgs/{org}/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	orgID := h.pathValue(ctx, "org")
	if orgID == "" {
		return
	}

	var req transport.TaskCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Description == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	task := &domain.Task{
		OrgID:       orgID,
		ProjectID:   req.ProjectID,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
	}
	if req.AssigneeID != "" {
		task.AssigneeID = &req.AssigneeID
	}
	if req.ExpectedFinish != "" {
		finish, err := time.Parse(time.RFC3339, req.ExpectedFinish)
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid expected_finish", nil))
			return
		}
		task.ExpectedFinish = &finish
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, actorID, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Get a single task
// @Tags tasks
// @Router /api/v1/orgs/{org}/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	taskID := h.pathValue(ctx, "id")
	if taskID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Get(stdCtx, actorID, taskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Change task status
// @Tags tasks
// @Router /api/v1/orgs/{org}/tasks/{id}/status [patch]
func (h *TaskHandler) ChangeStatus(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	taskID := h.pathValue(ctx, "id")
	if taskID == "" {
		return
	}

	var req transport.TaskStatusRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.ChangeStatus(stdCtx, actorID, taskID, domain.TaskStatus(req.Status))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Reassign task
// @Tags tasks
// @Router /api/v1/orgs/{org}/tasks/{id}/assignee [patch]
func (h *TaskHandler) Reassign(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	taskID := h.pathValue(ctx, "id")
	if taskID == "" {
		return
	}

	var req transport.TaskAssigneeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Reassign(stdCtx, actorID, taskID, req.AssigneeID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Set expected finish
// @Tags tasks
// @Router /api/v1/orgs/{org}/tasks/{id}/expected-finish [patch]
func (h *TaskHandler) SetExpectedFinish(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	taskID := h.pathValue(ctx, "id")
	if taskID == "" {
		return
	}

	var req transport.ExpectedFinishRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	var finish *time.Time
	if req.ExpectedFinish != nil {
		parsed, err := time.Parse(time.RFC3339, *req.ExpectedFinish)
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid expected_finish", nil))
			return
		}
		finish = &parsed
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.SetExpectedFinish(stdCtx, actorID, taskID, finish)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/orgs/{org}/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	taskID := h.pathValue(ctx, "id")
	if taskID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, actorID, taskID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary List task replies
// @Tags replies
// @Router /api/v1/orgs/{org}/tasks/{id}/replies [get]
func (h *TaskHandler) GetReplies(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	taskID := h.pathValue(ctx, "id")
	if taskID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	replies, err := h.uc.ListReplies(stdCtx, actorID, taskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, replies)
}

// @Summary Post a progress reply
// @Tags replies
// @Router /api/v1/orgs/{org}/tasks/{id}/replies [post]
func (h *TaskHandler) CreateReply(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	taskID := h.pathValue(ctx, "id")
	if taskID == "" {
		return
	}

	var req transport.ReplyRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	var newStatus *domain.TaskStatus
	if req.NewStatus != "" {
		status := domain.TaskStatus(req.NewStatus)
		newStatus = &status
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reply, err := h.uc.CreateReply(stdCtx, actorID, taskID, req.Message, newStatus)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, reply)
}

// @Summary Edit a progress reply
// @Tags replies
// @Router /api/v1/orgs/{org}/replies/{id} [put]
func (h *TaskHandler) UpdateReply(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	replyID := h.pathValue(ctx, "id")
	if replyID == "" {
		return
	}

	var req transport.ReplyRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Message == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	var newStatus *domain.TaskStatus
	if req.NewStatus != "" {
		status := domain.TaskStatus(req.NewStatus)
		newStatus = &status
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reply, err := h.uc.UpdateReply(stdCtx, actorID, replyID, req.Message, newStatus)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, reply)
}

// @Summary Delete a progress reply
// @Tags replies
// @Router /api/v1/orgs/{org}/replies/{id} [delete]
func (h *TaskHandler) DeleteReply(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	replyID := h.pathValue(ctx, "id")
	if replyID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteReply(stdCtx, actorID, replyID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
