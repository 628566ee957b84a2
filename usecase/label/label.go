package label

import (
	"context"

	"go.uber.org/zap"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/repository"
	"github.com/boardflow/backend/usecase"
)

type UseCase struct {
	labels    repository.LabelRepository
	publisher usecase.EventPublisher
	logger    *zap.Logger
}

func New(labels repository.LabelRepository, publisher usecase.EventPublisher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		labels:    labels,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *UseCase) ListLabels(ctx context.Context, boardID string) ([]domain.Label, error) {
	return uc.labels.ListByBoard(ctx, boardID)
}

func (uc *UseCase) CreateLabel(ctx context.Context, label *domain.Label) (*domain.Label, error) {
	if label == nil || label.BoardID == "" {
		return nil, domain.ErrInvalidPayload
	}

	created, err := uc.labels.Create(ctx, label)
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(domain.BoardChannel(created.BoardID), domain.Event{
		Type:    domain.EventLabelCreated,
		Payload: created,
	})
	return created, nil
}

func (uc *UseCase) UpdateLabel(ctx context.Context, label *domain.Label) (*domain.Label, error) {
	if label == nil || label.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	existing, err := uc.labels.GetByID(ctx, label.ID)
	if err != nil {
		return nil, err
	}
	label.BoardID = existing.BoardID

	if err := uc.labels.Update(ctx, label); err != nil {
		return nil, err
	}

	updated, err := uc.labels.GetByID(ctx, label.ID)
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(domain.BoardChannel(updated.BoardID), domain.Event{
		Type:    domain.EventLabelUpdated,
		Payload: updated,
	})
	return updated, nil
}

func (uc *UseCase) DeleteLabel(ctx context.Context, id string) error {
	label, err := uc.labels.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.labels.Delete(ctx, id); err != nil {
		return err
	}

	uc.publisher.Publish(domain.BoardChannel(label.BoardID), domain.Event{
		Type:    domain.EventLabelDeleted,
		Payload: map[string]string{"id": id, "board_id": label.BoardID},
	})
	return nil
}
