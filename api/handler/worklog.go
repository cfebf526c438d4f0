package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/pkg/httpcontext"
	"github.com/taskdeck/backend/repository"
	worklogUC "github.com/taskdeck/backend/usecase/worklog"
)

// logDateLayout is the wire format for work log dates.
const logDateLayout = "2006-01-02"

type WorkLogHandler struct {
	baseHandler
	uc *worklogUC.UseCase
}

func NewWorkLogHandler(uc *worklogUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *WorkLogHandler {
	return &WorkLogHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List work logs
// @Tags worklogs
// @Router /api/v1/orgs/{org}/worklogs [get]
func (h *WorkLogHandler) GetWorkLogs(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	orgID := h.pathValue(ctx, "org")
	if orgID == "" {
		return
	}

	filter := repository.WorkLogFilter{
		Status: domain.WorkLogStatus(ctx.QueryArgs().Peek("status")),
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}
	if from := string(ctx.QueryArgs().Peek("from")); from != "" {
		if parsed, err := time.Parse(logDateLayout, from); err == nil {
			filter.From = parsed
		}
	}
	if to := string(ctx.QueryArgs().Peek("to")); to != "" {
		if parsed, err := time.Parse(logDateLayout, to); err == nil {
			filter.To = parsed
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	logs, err := h.uc.List(stdCtx, orgID, actorID, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, logs)
}

// @Summary Submit a daily work log
// @Tags worklogs
// @Router /api/v1/orgs/{org}/worklogs [post]
func (h *WorkLogHandler) SubmitWorkLog(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	orgID := h.pathValue(ctx, "org")
	if orgID == "" {
		return
	}

	var req transport.WorkLogSubmitRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Content == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	log := &domain.WorkLog{
		OrgID:   orgID,
		Content: req.Content,
	}
	if req.ProjectID != "" {
		log.ProjectID = &req.ProjectID
	}
	if req.LogDate != "" {
		date, err := time.Parse(logDateLayout, req.LogDate)
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid log_date", nil))
			return
		}
		log.LogDate = date
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Submit(stdCtx, actorID, log)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Edit a pending work log
// @Tags worklogs
// @Router /api/v1/orgs/{org}/worklogs/{id} [put]
func (h *WorkLogHandler) EditWorkLog(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	logID := h.pathValue(ctx, "id")
	if logID == "" {
		return
	}

	var req transport.WorkLogEditRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Content == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	log, err := h.uc.Edit(stdCtx, actorID, logID, req.Content)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, log)
}

// @Summary Approve or reject a work log
// @Tags worklogs
// @Router /api/v1/orgs/{org}/worklogs/{id}/review [post]
func (h *WorkLogHandler) ReviewWorkLog(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	logID := h.pathValue(ctx, "id")
	if logID == "" {
		return
	}

	var req transport.WorkLogReviewRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	log, err := h.uc.Review(stdCtx, actorID, logID, req.Approve, req.Note)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, log)
}
