package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/pkg/httpcontext"
	dashboardUC "github.com/taskdeck/backend/usecase/dashboard"
)

type DashboardHandler struct {
	baseHandler
	uc *dashboardUC.UseCase
}

func NewDashboardHandler(uc *dashboardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Dashboard overview for the actor
// @Tags dashboard
// @Router /api/v1/orgs/{org}/dashboard [get]
func (h *DashboardHandler) GetOverview(ctx *fasthttp.RequestCtx) {
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

	overview, err := h.uc.Overview(stdCtx, orgID, actorID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, overview)
}
