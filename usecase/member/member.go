package member

import (
	"context"

	"go.uber.org/zap"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/repository"
	"github.com/boardflow/backend/usecase"
)

type UseCase struct {
	members   repository.MemberRepository
	publisher usecase.EventPublisher
	logger    *zap.Logger
}

func New(members repository.MemberRepository, publisher usecase.EventPublisher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		members:   members,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *UseCase) ListMembers(ctx context.Context, boardID string) ([]domain.Member, error) {
	return uc.members.ListByBoard(ctx, boardID)
}

func (uc *UseCase) CreateMember(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	if member == nil || member.BoardID == "" {
		return nil, domain.ErrInvalidPayload
	}

	created, err := uc.members.Create(ctx, member)
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(domain.BoardChannel(created.BoardID), domain.Event{
		Type:    domain.EventMemberCreated,
		Payload: created,
	})
	return created, nil
}

func (uc *UseCase) UpdateMember(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	if member == nil || member.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	existing, err := uc.members.GetByID(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	member.BoardID = existing.BoardID

	if err := uc.members.Update(ctx, member); err != nil {
		return nil, err
	}

	updated, err := uc.members.GetByID(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(domain.BoardChannel(updated.BoardID), domain.Event{
		Type:    domain.EventMemberUpdated,
		Payload: updated,
	})
	return updated, nil
}

func (uc *UseCase) DeleteMember(ctx context.Context, id string) error {
	member, err := uc.members.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.members.Delete(ctx, id); err != nil {
		return err
	}

	uc.publisher.Publish(domain.BoardChannel(member.BoardID), domain.Event{
		Type:    domain.EventMemberDeleted,
		Payload: map[string]string{"id": id, "board_id": member.BoardID},
	})
	return nil
}
