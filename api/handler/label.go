package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/boardflow/backend/api/transport"
	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/pkg/httpcontext"
	labelUC "github.com/boardflow/backend/usecase/label"
)

type LabelHandler struct {
	baseHandler
	uc *labelUC.UseCase
}

func NewLabelHandler(uc *labelUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *LabelHandler {
	return &LabelHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List labels
// @Tags labels
// @Router /api/v1/boards/{id}/labels [get]
func (h *LabelHandler) GetLabels(ctx *fasthttp.RequestCtx) {
	boardID := pathParam(ctx, "id")
	if boardID == "" {
		h.respondInvalid(ctx, "missing board id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	labels, err := h.uc.ListLabels(stdCtx, boardID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if labels == nil {
		labels = []domain.Label{}
	}
	h.respondSuccess(ctx, http.StatusOK, labels)
}

// @Summary Create label
// @Tags labels
// @Router /api/v1/boards/{id}/labels [post]
func (h *LabelHandler) CreateLabel(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	label, ok := h.parseLabel(ctx)
	if !ok {
		return
	}
	label.BoardID = pathParam(ctx, "id")
	if label.BoardID == "" || label.Name == "" {
		h.respondInvalid(ctx, "board id and name are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateLabel(stdCtx, label)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update label
// @Tags labels
// @Router /api/v1/labels/{id} [put]
func (h *LabelHandler) UpdateLabel(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	label, ok := h.parseLabel(ctx)
	if !ok {
		return
	}
	label.ID = pathParam(ctx, "id")
	if label.ID == "" {
		h.respondInvalid(ctx, "missing label id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateLabel(stdCtx, label)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete label
// @Tags labels
// @Router /api/v1/labels/{id} [delete]
func (h *LabelHandler) DeleteLabel(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing label id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteLabel(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *LabelHandler) parseLabel(ctx *fasthttp.RequestCtx) (*domain.Label, bool) {
	var req transport.LabelRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	return &domain.Label{
		Name:      req.Name,
		Color:     req.Color,
		BgColor:   req.BgColor,
		TextColor: req.TextColor,
	}, true
}
