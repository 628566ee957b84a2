package comment

import (
	"context"

	"go.uber.org/zap"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/repository"
	"github.com/boardflow/backend/usecase"
)

type UseCase struct {
	comments  repository.CommentRepository
	tasks     repository.TaskRepository
	columns   repository.ColumnRepository
	publisher usecase.EventPublisher
	recorder  usecase.ActivityRecorder
	logger    *zap.Logger
}

func New(
	comments repository.CommentRepository,
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
		comments:  comments,
		tasks:     tasks,
		columns:   columns,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
	}
}

func (uc *UseCase) ListComments(ctx context.Context, taskID string) ([]domain.Comment, error) {
	return uc.comments.ListByTask(ctx, taskID)
}

// CreateComment writes the comment, bumps the task's cached comment
// count, and publishes comment:create on the task channel. Board
// viewers learn about it through the activity event instead.
func (uc *UseCase) CreateComment(ctx context.Context, comment *domain.Comment, actor usecase.Actor) (*domain.Comment, error) {
	if comment == nil || comment.TaskID == "" {
		return nil, domain.ErrInvalidPayload
	}

	task, err := uc.tasks.GetByID(ctx, comment.TaskID)
	if err != nil {
		return nil, err
	}
	if comment.Author == "" {
		comment.Author = actor.Name
	}

	created, err := uc.comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	// Derived side effect: the cache drifting is tolerable, losing the
	// comment is not.
	if err := uc.tasks.AdjustCommentCount(ctx, task.ID, 1); err != nil {
		uc.logger.Warn("failed to bump comment count",
			zap.String("task_id", task.ID), zap.Error(err))
	}

	uc.publisher.Publish(domain.TaskChannel(task.ID), domain.Event{
		Type:    domain.EventCommentCreated,
		Payload: created,
	})

	if column, err := uc.columns.GetByID(ctx, task.ColumnID); err == nil {
		uc.recorder.Record(ctx, column.BoardID, actor, "commented on", task.Title, task.ID)
	} else {
		uc.logger.Warn("failed to resolve board for comment activity",
			zap.String("task_id", task.ID), zap.Error(err))
	}
	return created, nil
}

func (uc *UseCase) DeleteComment(ctx context.Context, id string) error {
	comment, err := uc.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.comments.Delete(ctx, id); err != nil {
		return err
	}

	if err := uc.tasks.AdjustCommentCount(ctx, comment.TaskID, -1); err != nil {
		uc.logger.Warn("failed to drop comment count",
			zap.String("task_id", comment.TaskID), zap.Error(err))
	}

	uc.publisher.Publish(domain.TaskChannel(comment.TaskID), domain.Event{
		Type:    domain.EventCommentDeleted,
		Payload: map[string]string{"id": id, "task_id": comment.TaskID},
	})
	return nil
}
