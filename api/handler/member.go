package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/boardflow/backend/api/transport"
	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/pkg/httpcontext"
	memberUC "github.com/boardflow/backend/usecase/member"
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

// @Summary List members
// @Tags members
// @Router /api/v1/boards/{id}/members [get]
func (h *MemberHandler) GetMembers(ctx *fasthttp.RequestCtx) {
	boardID := pathParam(ctx, "id")
	if boardID == "" {
		h.respondInvalid(ctx, "missing board id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	members, err := h.uc.ListMembers(stdCtx, boardID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if members == nil {
		members = []domain.Member{}
	}
	h.respondSuccess(ctx, http.StatusOK, members)
}

// @Summary Add member
// @Tags members
// @Router /api/v1/boards/{id}/members [post]
func (h *MemberHandler) CreateMember(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	member, ok := h.parseMember(ctx)
	if !ok {
		return
	}
	member.BoardID = pathParam(ctx, "id")
	if member.BoardID == "" || member.Name == "" {
		h.respondInvalid(ctx, "board id and name are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateMember(stdCtx, member)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update member
// @Tags members
// @Router /api/v1/members/{id} [put]
func (h *MemberHandler) UpdateMember(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	member, ok := h.parseMember(ctx)
	if !ok {
		return
	}
	member.ID = pathParam(ctx, "id")
	if member.ID == "" {
		h.respondInvalid(ctx, "missing member id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateMember(stdCtx, member)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Remove member
// @Tags members
// @Router /api/v1/members/{id} [delete]
func (h *MemberHandler) DeleteMember(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing member id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteMember(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *MemberHandler) parseMember(ctx *fasthttp.RequestCtx) (*domain.Member, bool) {
	var req transport.MemberRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}

	member := &domain.Member{
		Name:   req.Name,
		Role:   domain.Role(req.Role),
		Avatar: req.Avatar,
		Color:  req.Color,
	}
	if member.Role == "" {
		member.Role = domain.RoleEditor
	}
	return member, true
}
