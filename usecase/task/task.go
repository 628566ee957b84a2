package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/internal/ordering"
	"github.com/boardflow/backend/repository"
	"github.com/boardflow/backend/usecase"
)

type UseCase struct {
	tasks     repository.TaskRepository
	columns   repository.ColumnRepository
	publisher usecase.EventPublisher
	recorder  usecase.ActivityRecorder
	logger    *zap.Logger
	now       func() time.Time
}

func New(
	tasks repository.TaskRepository,
	columns repository.ColumnRepository,
	publisher usecase.EventPublisher,
	recorder usecase.ActivityRecorder,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:     tasks,
		columns:   columns,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

// CreateTask appends the task to its column unless the caller supplied
// an explicit order. Creating directly into a completion column stamps
// completed_at immediately.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task, actor usecase.Actor) (*domain.Task, error) {
	if task == nil || task.ColumnID == "" {
		return nil, domain.ErrInvalidPayload
	}

	column, err := uc.columns.GetByID(ctx, task.ColumnID)
	if err != nil {
		return nil, err
	}

	explicitOrder := task.Order >= 0
	if !explicitOrder {
		siblings, err := uc.tasks.ListByColumn(ctx, task.ColumnID)
		if err != nil {
			return nil, err
		}
		task.Order = ordering.NextOrder(len(siblings))
	}
	if column.DenotesCompletion() {
		now := uc.now()
		task.CompletedAt = &now
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	// An explicit order takes a slot already held by a sibling, so the
	// whole column shifts to make room.
	if explicitOrder {
		if err := uc.insertAt(ctx, created); err != nil {
			uc.logger.Error("failed to renumber column after insert",
				zap.String("column_id", created.ColumnID), zap.Error(err))
		}
	}

	uc.publisher.Publish(domain.BoardChannel(column.BoardID), domain.Event{
		Type:    domain.EventTaskCreated,
		Payload: created,
	})
	uc.recorder.Record(ctx, column.BoardID, actor, "created a task", created.Title, created.ID)
	return created, nil
}

// UpdateTask applies field edits, including archiving. Field edits are
// not user-visible activity; only the primary event goes out.
func (uc *UseCase) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	existing, err := uc.tasks.GetByID(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	task.ColumnID = existing.ColumnID
	task.CompletedAt = existing.CompletedAt
	if task.Order < 0 {
		task.Order = existing.Order
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	updated, err := uc.tasks.GetByID(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	boardID, err := uc.boardID(ctx, updated.ColumnID)
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(domain.BoardChannel(boardID), domain.Event{
		Type:    domain.EventTaskUpdated,
		Payload: updated,
	})
	return updated, nil
}

// MoveTask places the task at position in the destination column,
// re-evaluating completed_at against the destination title in the same
// write, then renumbers both affected columns.
func (uc *UseCase) MoveTask(ctx context.Context, id, columnID string, position int) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	source, err := uc.columns.GetByID(ctx, task.ColumnID)
	if err != nil {
		return nil, err
	}
	dest, err := uc.columns.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if source.BoardID != dest.BoardID {
		return nil, domain.WrapError(domain.ErrCodeConflict, "cannot move a task across boards", nil)
	}

	completedAt := task.CompletedAt
	if dest.DenotesCompletion() {
		if completedAt == nil {
			now := uc.now()
			completedAt = &now
		}
	} else {
		completedAt = nil
	}

	if err := uc.tasks.Move(ctx, id, columnID, position, completedAt); err != nil {
		return nil, err
	}

	if err := uc.renumberColumn(ctx, columnID, id, position); err != nil {
		uc.logger.Error("failed to renumber destination column",
			zap.String("column_id", columnID), zap.Error(err))
	}
	if source.ID != dest.ID {
		if err := uc.renumberColumn(ctx, source.ID, "", 0); err != nil {
			uc.logger.Error("failed to renumber source column",
				zap.String("column_id", source.ID), zap.Error(err))
		}
	}

	moved, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(domain.BoardChannel(dest.BoardID), domain.Event{
		Type:    domain.EventTaskMoved,
		Payload: moved,
	})
	return moved, nil
}

// SetAssignees replaces the task's assignee set.
func (uc *UseCase) SetAssignees(ctx context.Context, id string, memberIDs []string) (*domain.Task, error) {
	if _, err := uc.tasks.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.tasks.SetAssignees(ctx, id, memberIDs); err != nil {
		return nil, err
	}

	updated, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	boardID, err := uc.boardID(ctx, updated.ColumnID)
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(domain.BoardChannel(boardID), domain.Event{
		Type:    domain.EventTaskUpdated,
		Payload: updated,
	})
	return updated, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	boardID, err := uc.boardID(ctx, task.ColumnID)
	if err != nil {
		return err
	}

	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}

	uc.publisher.Publish(domain.BoardChannel(boardID), domain.Event{
		Type:    domain.EventTaskDeleted,
		Payload: map[string]string{"id": id, "column_id": task.ColumnID},
	})
	return nil
}

// insertAt renumbers the created task's column so the task lands at
// its requested position and the sibling orders stay contiguous.
func (uc *UseCase) insertAt(ctx context.Context, created *domain.Task) error {
	siblings, err := uc.tasks.ListByColumn(ctx, created.ColumnID)
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
	return uc.tasks.UpdatePositions(ctx, updates)
}

func (uc *UseCase) renumberColumn(ctx context.Context, columnID, movedID string, position int) error {
	siblings, err := uc.tasks.ListByColumn(ctx, columnID)
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
	return uc.tasks.UpdatePositions(ctx, updates)
}

func (uc *UseCase) boardID(ctx context.Context, columnID string) (string, error) {
	column, err := uc.columns.GetByID(ctx, columnID)
	if err != nil {
		return "", err
	}
	return column.BoardID, nil
}
