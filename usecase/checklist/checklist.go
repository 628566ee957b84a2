package checklist

import (
	"context"

	"go.uber.org/zap"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/internal/ordering"
	"github.com/boardflow/backend/repository"
	"github.com/boardflow/backend/usecase"
)

type UseCase struct {
	items     repository.ChecklistRepository
	tasks     repository.TaskRepository
	publisher usecase.EventPublisher
	logger    *zap.Logger
}

func New(
	items repository.ChecklistRepository,
	tasks repository.TaskRepository,
	publisher usecase.EventPublisher,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		items:     items,
		tasks:     tasks,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *UseCase) ListItems(ctx context.Context, taskID string) ([]domain.ChecklistItem, error) {
	return uc.items.ListByTask(ctx, taskID)
}

// CreateItem appends the item to its task's checklist unless an
// explicit order was supplied, and bumps the task's checklist count.
func (uc *UseCase) CreateItem(ctx context.Context, item *domain.ChecklistItem) (*domain.ChecklistItem, error) {
	if item == nil || item.TaskID == "" {
		return nil, domain.ErrInvalidPayload
	}

	if _, err := uc.tasks.GetByID(ctx, item.TaskID); err != nil {
		return nil, err
	}

	explicitOrder := item.Order >= 0
	if !explicitOrder {
		siblings, err := uc.items.ListByTask(ctx, item.TaskID)
		if err != nil {
			return nil, err
		}
		item.Order = ordering.NextOrder(len(siblings))
	}

	created, err := uc.items.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	// An explicit order takes a slot already held by a sibling, so the
	// checklist shifts to make room.
	if explicitOrder {
		if err := uc.renumber(ctx, created.TaskID, created.ID, created.Order); err != nil {
			uc.logger.Error("failed to renumber checklist after insert",
				zap.String("task_id", created.TaskID), zap.Error(err))
		} else if placed, err := uc.items.GetByID(ctx, created.ID); err == nil {
			created = placed
		}
	}

	if err := uc.tasks.AdjustChecklistCount(ctx, item.TaskID, 1); err != nil {
		uc.logger.Warn("failed to bump checklist count",
			zap.String("task_id", item.TaskID), zap.Error(err))
	}

	uc.publisher.Publish(domain.TaskChannel(created.TaskID), domain.Event{
		Type:    domain.EventChecklistCreated,
		Payload: created,
	})
	return created, nil
}

// UpdateItem applies text/check edits. When the order changed, the
// whole checklist is renumbered around the item's new position.
func (uc *UseCase) UpdateItem(ctx context.Context, item *domain.ChecklistItem) (*domain.ChecklistItem, error) {
	if item == nil || item.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	existing, err := uc.items.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.TaskID = existing.TaskID

	reorder := item.Order >= 0 && item.Order != existing.Order
	if item.Order < 0 {
		item.Order = existing.Order
	}

	if err := uc.items.Update(ctx, item); err != nil {
		return nil, err
	}

	if reorder {
		if err := uc.renumber(ctx, item.TaskID, item.ID, item.Order); err != nil {
			uc.logger.Error("failed to renumber checklist",
				zap.String("task_id", item.TaskID), zap.Error(err))
		}
	}

	updated, err := uc.items.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(domain.TaskChannel(updated.TaskID), domain.Event{
		Type:    domain.EventChecklistUpdated,
		Payload: updated,
	})
	return updated, nil
}

func (uc *UseCase) DeleteItem(ctx context.Context, id string) error {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.items.Delete(ctx, id); err != nil {
		return err
	}

	if err := uc.tasks.AdjustChecklistCount(ctx, item.TaskID, -1); err != nil {
		uc.logger.Warn("failed to drop checklist count",
			zap.String("task_id", item.TaskID), zap.Error(err))
	}

	uc.publisher.Publish(domain.TaskChannel(item.TaskID), domain.Event{
		Type:    domain.EventChecklistDeleted,
		Payload: map[string]string{"id": id, "task_id": item.TaskID},
	})
	return nil
}

func (uc *UseCase) renumber(ctx context.Context, taskID, movedID string, position int) error {
	siblings, err := uc.items.ListByTask(ctx, taskID)
	if err != nil {
		return err
	}
	items := make([]ordering.Item, len(siblings))
	for i, sibling := range siblings {
		items[i] = ordering.Item{ID: sibling.ID, Order: sibling.Order, CreatedAt: sibling.CreatedAt}
	}

	placements := ordering.Renumber(items, movedID, position)
	updates := make([]repository.PositionUpdate, len(placements))
	for i, p := range placements {
		updates[i] = repository.PositionUpdate{ID: p.ID, Order: p.Order}
	}
	return uc.items.UpdatePositions(ctx, updates)
}
