package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/pkg/httpcontext"
	memberUC "github.com/taskdeck/backend/usecase/member"
)

type MemberHandler struct {
	baseHandler
	uc *memberUC.UseCase
}

func NewMemberHandler(uc *memberUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List organization members
// @Tags members
// @Router /api/v1/orgs/{org}/members [get]
func (h *MemberHandler) GetMembers(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	orgID := h.pathValue(ctx, "org")
	if orgID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	members, err := h.uc.List(stdCtx, orgID, actorID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, members)
}

// @Summary Change a member's role
// @Tags members
// @Router /api/v1/orgs/{org}/members/{user}/role [patch]
func (h *MemberHandler) SetRole(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	orgID := h.pathValue(ctx, "org")
	if orgID == "" {
		return
	}
	targetID := h.pathValue(ctx, "user")
	if targetID == "" {
		return
	}

	var req transport.MemberRoleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Role == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	membership, err := h.uc.SetRole(stdCtx, orgID, actorID, targetID, domain.Role(req.Role))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, membership)
}

// @Summary Activate or deactivate a member
// @Tags members
// @Router /api/v1/orgs/{org}/members/{user}/active [patch]
func (h *MemberHandler) SetActive(ctx *fasthttp.RequestCtx) {
	actorID := h.userID(ctx)
	if actorID == "" {
		return
	}
	orgID := h.pathValue(ctx, "org")
	if orgID == "" {
		return
	}
	targetID := h.pathValue(ctx, "user")
	if targetID == "" {
		return
	}

	var req transport.MemberActiveRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	membership, err := h.uc.SetActive(stdCtx, orgID, actorID, targetID, req.Active)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, membership)
}
