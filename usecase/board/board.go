package board

import (
	"context"

	"go.uber.org/zap"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/repository"
	"github.com/boardflow/backend/usecase"
)

type UseCase struct {
	boards    repository.BoardRepository
	columns   repository.ColumnRepository
	tasks     repository.TaskRepository
	labels    repository.LabelRepository
	members   repository.MemberRepository
	publisher usecase.EventPublisher
	logger    *zap.Logger
}

func New(
	boards repository.BoardRepository,
	columns repository.ColumnRepository,
	tasks repository.TaskRepository,
	labels repository.LabelRepository,
	members repository.MemberRepository,
	publisher usecase.EventPublisher,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		boards:    boards,
		columns:   columns,
		tasks:     tasks,
		labels:    labels,
		members:   members,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *UseCase) ListBoards(ctx context.Context) ([]domain.Board, error) {
	return uc.boards.List(ctx)
}

// GetSnapshot assembles the fully resolved board a client uses to
// reconcile after missed realtime events: columns in display order,
// each with its tasks in display order, plus labels and members.
func (uc *UseCase) GetSnapshot(ctx context.Context, id string) (*domain.BoardSnapshot, error) {
	board, err := uc.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	columns, err := uc.columns.ListByBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := uc.tasks.ListByBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	labels, err := uc.labels.ListByBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := uc.members.ListByBoard(ctx, id)
	if err != nil {
		return nil, err
	}

	byColumn := make(map[string][]domain.Task, len(columns))
	for _, task := range tasks {
		byColumn[task.ColumnID] = append(byColumn[task.ColumnID], task)
	}

	snapshot := &domain.BoardSnapshot{
		Board:   *board,
		Columns: make([]domain.ColumnWithTasks, 0, len(columns)),
		Labels:  labels,
		Members: members,
	}
	for _, column := range columns {
		tasks := byColumn[column.ID]
		if tasks == nil {
			tasks = []domain.Task{}
		}
		snapshot.Columns = append(snapshot.Columns, domain.ColumnWithTasks{
			Column: column,
			Tasks:  tasks,
		})
	}
	if snapshot.Labels == nil {
		snapshot.Labels = []domain.Label{}
	}
	if snapshot.Members == nil {
		snapshot.Members = []domain.Member{}
	}
	return snapshot, nil
}

func (uc *UseCase) CreateBoard(ctx context.Context, board *domain.Board, actor usecase.Actor) (*domain.Board, error) {
	created, err := uc.boards.Create(ctx, board)
	if err != nil {
		return nil, err
	}

	// The creator becomes the board's owner member.
	if actor.Name != "" {
		member := &domain.Member{
			BoardID: created.ID,
			Name:    actor.Name,
			Role:    domain.RoleOwner,
		}
		if _, err := uc.members.Create(ctx, member); err != nil {
			uc.logger.Warn("failed to add owner member to new board",
				zap.String("board_id", created.ID), zap.Error(err))
		}
	}
	return created, nil
}

func (uc *UseCase) UpdateBoard(ctx context.Context, board *domain.Board) (*domain.Board, error) {
	if err := uc.boards.Update(ctx, board); err != nil {
		return nil, err
	}

	updated, err := uc.boards.GetByID(ctx, board.ID)
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(domain.BoardChannel(updated.ID), domain.Event{
		Type:    domain.EventBoardUpdated,
		Payload: updated,
	})
	return updated, nil
}

func (uc *UseCase) DeleteBoard(ctx context.Context, id string) error {
	if err := uc.boards.Delete(ctx, id); err != nil {
		return err
	}
	uc.publisher.Publish(domain.BoardChannel(id), domain.Event{
		Type:    domain.EventBoardDeleted,
		Payload: map[string]string{"id": id},
	})
	return nil
}
