package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/pkg/httpcontext"
	activityUC "github.com/boardflow/backend/usecase/activity"
)

const defaultFeedLimit = 20

type ActivityHandler struct {
	baseHandler
	uc *activityUC.UseCase
}

func NewActivityHandler(uc *activityUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Activity feed
// @Tags activity
// @Router /api/v1/boards/{id}/activity [get]
func (h *ActivityHandler) GetActivity(ctx *fasthttp.RequestCtx) {
	boardID := pathParam(ctx, "id")
	if boardID == "" {
		h.respondInvalid(ctx, "missing board id")
		return
	}
	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), defaultFeedLimit)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.uc.ListActivity(stdCtx, boardID, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if entries == nil {
		entries = []domain.ActivityEntry{}
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}

// @Summary List notifications
// @Tags notifications
// @Router /api/v1/boards/{id}/notifications [get]
func (h *ActivityHandler) GetNotifications(ctx *fasthttp.RequestCtx) {
	boardID := pathParam(ctx, "id")
	if boardID == "" {
		h.respondInvalid(ctx, "missing board id")
		return
	}
	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), defaultFeedLimit)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	notifications, err := h.uc.ListNotifications(stdCtx, boardID, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	h.respondSuccess(ctx, http.StatusOK, notifications)
}

// @Summary Mark notification read
// @Tags notifications
// @Router /api/v1/notifications/{id}/read [put]
func (h *ActivityHandler) MarkNotificationRead(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing notification id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.MarkNotificationRead(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Clear notifications
// @Tags notifications
// @Router /api/v1/boards/{id}/notifications [delete]
func (h *ActivityHandler) ClearNotifications(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	boardID := pathParam(ctx, "id")
	if boardID == "" {
		h.respondInvalid(ctx, "missing board id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.ClearNotifications(stdCtx, boardID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
