package column

import (
	"context"

	"go.uber.org/zap"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/internal/ordering"
	"github.com/boardflow/backend/repository"
	"github.com/boardflow/backend/usecase"
)

type UseCase struct {
	columns   repository.ColumnRepository
	tasks     repository.TaskRepository
	publisher usecase.EventPublisher
	recorder  usecase.ActivityRecorder
	logger    *zap.Logger
}

func New(
	columns repository.ColumnRepository,
	tasks repository.TaskRepository,
	publisher usecase.EventPublisher,
	recorder usecase.ActivityRecorder,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		columns:   columns,
		tasks:     tasks,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
	}
}

// CreateColumn appends the column to the end of its board unless the
// caller supplied an explicit order (column.Order >= 0).
func (uc *UseCase) CreateColumn(ctx context.Context, column *domain.Column, actor usecase.Actor) (*domain.Column, error) {
	if column == nil || column.BoardID == "" {
		return nil, domain.ErrInvalidPayload
	}

	explicitOrder := column.Order >= 0
	if !explicitOrder {
		siblings, err := uc.columns.ListByBoard(ctx, column.BoardID)
		if err != nil {
			return nil, err
		}
		column.Order = ordering.NextOrder(len(siblings))
	}

	created, err := uc.columns.Create(ctx, column)
	if err != nil {
		return nil, err
	}

	// An explicit order takes a slot already held by a sibling, so the
	// board's columns shift to make room.
	if explicitOrder {
		if err := uc.insertAt(ctx, created); err != nil {
			uc.logger.Error("failed to renumber board after insert",
				zap.String("board_id", created.BoardID), zap.Error(err))
		}
	}

	uc.publisher.Publish(domain.BoardChannel(created.BoardID), domain.Event{
		Type:    domain.EventColumnCreated,
		Payload: created,
	})
	uc.recorder.Record(ctx, created.BoardID, actor, "created a column", created.Title, "")
	return created, nil
}

// insertAt renumbers the created column's board so the column lands at
// its requested position and the sibling orders stay contiguous.
func (uc *UseCase) insertAt(ctx context.Context, created *domain.Column) error {
	siblings, err := uc.columns.ListByBoard(ctx, created.BoardID)
	if err != nil {
		return err
	}
	items := make([]ordering.Item, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ID == created.ID {
			continue
		}
		items = append(items, ordering.Item{ID: sibling.ID, Order: sibling.Order, CreatedAt: sibling.CreatedAt})
	}

	placements := ordering.Insert(items, created.ID, created.Order, created.CreatedAt)
	updates := make([]repository.PositionUpdate, len(placements))
	for i, p := range placements {
		updates[i] = repository.PositionUpdate{ID: p.ID, Order: p.Order}
		if p.ID == created.ID {
			created.Order = p.Order
		}
	}
	return uc.columns.UpdatePositions(ctx, updates)
}

func (uc *UseCase) UpdateColumn(ctx context.Context, column *domain.Column, actor usecase.Actor) (*domain.Column, error) {
	if column == nil || column.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	existing, err := uc.columns.GetByID(ctx, column.ID)
	if err != nil {
		return nil, err
	}
	column.BoardID = existing.BoardID
	if column.Order < 0 {
		column.Order = existing.Order
	}

	if err := uc.columns.Update(ctx, column); err != nil {
		return nil, err
	}

	// A rename to or from a completion title flips completed_at for
	// every task sitting in the column.
	if existing.Title != column.Title && existing.DenotesCompletion() != column.DenotesCompletion() {
		if err := uc.tasks.RecomputeCompletion(ctx, column.ID, column.DenotesCompletion()); err != nil {
			uc.logger.Error("failed to recompute task completion after rename",
				zap.String("column_id", column.ID), zap.Error(err))
		}
	}

	updated, err := uc.columns.GetByID(ctx, column.ID)
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(domain.BoardChannel(updated.BoardID), domain.Event{
		Type:    domain.EventColumnUpdated,
		Payload: updated,
	})
	if existing.Title != updated.Title {
		uc.recorder.Record(ctx, updated.BoardID, actor, "renamed the column", updated.Title, "")
	}
	return updated, nil
}

// MoveColumn places the column at position among its board's columns
// and renumbers the whole sibling set contiguously.
func (uc *UseCase) MoveColumn(ctx context.Context, id string, position int) (*domain.Column, error) {
	column, err := uc.columns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	siblings, err := uc.columns.ListByBoard(ctx, column.BoardID)
	if err != nil {
		return nil, err
	}

	items := make([]ordering.Item, len(siblings))
	for i, sibling := range siblings {
		items[i] = ordering.Item{ID: sibling.ID, Order: sibling.Order, CreatedAt: sibling.CreatedAt}
	}

	placements := ordering.Renumber(items, id, position)
	updates := make([]repository.PositionUpdate, len(placements))
	for i, p := range placements {
		updates[i] = repository.PositionUpdate{ID: p.ID, Order: p.Order}
		if p.ID == id {
			column.Order = p.Order
		}
	}
	if err := uc.columns.UpdatePositions(ctx, updates); err != nil {
		return nil, err
	}

	uc.publisher.Publish(domain.BoardChannel(column.BoardID), domain.Event{
		Type:    domain.EventColumnMoved,
		Payload: column,
	})
	return column, nil
}

func (uc *UseCase) DeleteColumn(ctx context.Context, id string, actor usecase.Actor) error {
	column, err := uc.columns.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.columns.Delete(ctx, id); err != nil {
		return err
	}

	uc.publisher.Publish(domain.BoardChannel(column.BoardID), domain.Event{
		Type:    domain.EventColumnDeleted,
		Payload: map[string]string{"id": id, "board_id": column.BoardID},
	})
	uc.recorder.Record(ctx, column.BoardID, actor, "deleted the column", column.Title, "")
	return nil
}
