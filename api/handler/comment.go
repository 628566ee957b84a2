package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/boardflow/backend/api/transport"
	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/pkg/httpcontext"
	commentUC "github.com/boardflow/backend/usecase/comment"
)

type CommentHandler struct {
	baseHandler
	uc *commentUC.UseCase
}

func NewCommentHandler(uc *commentUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List comments
// @Tags comments
// @Router /api/v1/tasks/{id}/comments [get]
func (h *CommentHandler) GetComments(ctx *fasthttp.RequestCtx) {
	taskID := pathParam(ctx, "id")
	if taskID == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	comments, err := h.uc.ListComments(stdCtx, taskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	h.respondSuccess(ctx, http.StatusOK, comments)
}

// @Summary Create comment
// @Tags comments
// @Router /api/v1/tasks/{id}/comments [post]
func (h *CommentHandler) CreateComment(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	taskID := pathParam(ctx, "id")
	if taskID == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	var req transport.CommentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if req.Content == "" {
		h.respondInvalid(ctx, "content is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateComment(stdCtx, &domain.Comment{
		TaskID:  taskID,
		Author:  req.Author,
		Content: req.Content,
	}, actor)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Delete comment
// @Tags comments
// @Router /api/v1/comments/{id} [delete]
func (h *CommentHandler) DeleteComment(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing comment id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteComment(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
