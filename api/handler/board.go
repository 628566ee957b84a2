package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/boardflow/backend/api/transport"
	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/internal/services"
	"github.com/boardflow/backend/pkg/httpcontext"
	boardUC "github.com/boardflow/backend/usecase/board"
)

type BoardHandler struct {
	baseHandler
	uc       *boardUC.UseCase
	presence *services.Presence
}

func NewBoardHandler(uc *boardUC.UseCase, presence *services.Presence, adapter *httpcontext.Adapter, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		presence:    presence,
	}
}

// @Summary List boards
// @Tags boards
// @Router /api/v1/boards [get]
func (h *BoardHandler) GetBoards(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	boards, err := h.uc.ListBoards(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, boards)
}

// @Summary Board snapshot
// @Tags boards
// @Router /api/v1/boards/{id} [get]
func (h *BoardHandler) GetBoard(ctx *fasthttp.RequestCtx) {
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing board id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	snapshot, err := h.uc.GetSnapshot(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshot)
}

// @Summary Create board
// @Tags boards
// @Router /api/v1/boards [post]
func (h *BoardHandler) CreateBoard(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	board, ok := h.parseBoard(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateBoard(stdCtx, board, actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update board
// @Tags boards
// @Router /api/v1/boards/{id} [put]
func (h *BoardHandler) UpdateBoard(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	board, ok := h.parseBoard(ctx)
	if !ok {
		return
	}
	board.ID = pathParam(ctx, "id")
	if board.ID == "" {
		h.respondInvalid(ctx, "missing board id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateBoard(stdCtx, board)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete board
// @Tags boards
// @Router /api/v1/boards/{id} [delete]
func (h *BoardHandler) DeleteBoard(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing board id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteBoard(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Board presence
// @Tags boards
// @Router /api/v1/boards/{id}/presence [get]
func (h *BoardHandler) GetPresence(ctx *fasthttp.RequestCtx) {
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing board id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	viewers, err := h.presence.Viewers(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if viewers == nil {
		viewers = []string{}
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"board_id": id,
		"viewers":  viewers,
	})
}

func (h *BoardHandler) parseBoard(ctx *fasthttp.RequestCtx) (*domain.Board, bool) {
	var req transport.BoardRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	board := &domain.Board{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Visibility:  domain.Visibility(req.Visibility),
	}
	if board.Visibility == "" {
		board.Visibility = domain.VisibilityPrivate
	}
	return board, true
}
