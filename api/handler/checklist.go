package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/boardflow/backend/api/transport"
	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/pkg/httpcontext"
	checklistUC "github.com/boardflow/backend/usecase/checklist"
)

type ChecklistHandler struct {
	baseHandler
	uc *checklistUC.UseCase
}

func NewChecklistHandler(uc *checklistUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ChecklistHandler {
	return &ChecklistHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List checklist items
// @Tags checklist
// @Router /api/v1/tasks/{id}/checklist [get]
func (h *ChecklistHandler) GetItems(ctx *fasthttp.RequestCtx) {
	taskID := pathParam(ctx, "id")
	if taskID == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	items, err := h.uc.ListItems(stdCtx, taskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if items == nil {
		items = []domain.ChecklistItem{}
	}
	h.respondSuccess(ctx, http.StatusOK, items)
}

// @Summary Create checklist item
// @Tags checklist
// @Router /api/v1/tasks/{id}/checklist [post]
func (h *ChecklistHandler) CreateItem(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	taskID := pathParam(ctx, "id")
	if taskID == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	var req transport.ChecklistItemRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if req.Text == "" {
		h.respondInvalid(ctx, "text is required")
		return
	}

	item := &domain.ChecklistItem{
		TaskID: taskID,
		Text:   req.Text,
		Order:  orderOrAppend(req.Order),
	}
	if req.IsChecked != nil {
		item.IsChecked = *req.IsChecked
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateItem(stdCtx, item)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update checklist item
// @Tags checklist
// @Router /api/v1/checklist/{id} [put]
func (h *ChecklistHandler) UpdateItem(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing checklist item id")
		return
	}

	var req transport.ChecklistItemRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	item := &domain.ChecklistItem{
		ID:    id,
		Text:  req.Text,
		Order: orderOrAppend(req.Order),
	}
	if req.IsChecked != nil {
		item.IsChecked = *req.IsChecked
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateItem(stdCtx, item)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete checklist item
// @Tags checklist
// @Router /api/v1/checklist/{id} [delete]
func (h *ChecklistHandler) DeleteItem(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing checklist item id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteItem(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
