package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/boardflow/backend/api/transport"
	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/pkg/httpcontext"
	columnUC "github.com/boardflow/backend/usecase/column"
)

type ColumnHandler struct {
	baseHandler
	uc *columnUC.UseCase
}

func NewColumnHandler(uc *columnUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ColumnHandler {
	return &ColumnHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create column
// @Tags columns
// @Router /api/v1/columns [post]
func (h *ColumnHandler) CreateColumn(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	column, ok := h.parseColumn(ctx)
	if !ok {
		return
	}
	if column.BoardID == "" || column.Title == "" {
		h.respondInvalid(ctx, "board_id and title are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateColumn(stdCtx, column, actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update column
// @Tags columns
// @Router /api/v1/columns/{id} [put]
func (h *ColumnHandler) UpdateColumn(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	column, ok := h.parseColumn(ctx)
	if !ok {
		return
	}
	column.ID = pathParam(ctx, "id")
	if column.ID == "" {
		h.respondInvalid(ctx, "missing column id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateColumn(stdCtx, column, actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Move column
// @Tags columns
// @Router /api/v1/columns/{id}/position [put]
func (h *ColumnHandler) MoveColumn(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing column id")
		return
	}

	var req transport.PositionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	moved, err := h.uc.MoveColumn(stdCtx, id, req.Position)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, moved)
}

// @Summary Delete column
// @Tags columns
// @Router /api/v1/columns/{id} [delete]
func (h *ColumnHandler) DeleteColumn(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing column id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteColumn(stdCtx, id, actor); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *ColumnHandler) parseColumn(ctx *fasthttp.RequestCtx) (*domain.Column, bool) {
	var req transport.ColumnRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	return &domain.Column{
		BoardID: req.BoardID,
		Title:   req.Title,
		Color:   req.Color,
		Order:   orderOrAppend(req.Order),
	}, true
}
