package repository

import (
	"context"
	"time"

	"github.com/boardflow/backend/domain"
)

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// ListByColumn returns tasks sorted by (order, created_at).
	ListByColumn(ctx context.Context, columnID string) ([]domain.Task, error)
	ListByBoard(ctx context.Context, boardID string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	// Move updates column assignment, position, and completion stamp in
	// a single atomic write so a task is never observable with a stale
	// completed_at for its new column.
	Move(ctx context.Context, id, columnID string, order int, completedAt *time.Time) error
	UpdatePositions(ctx context.Context, updates []PositionUpdate) error
	// RecomputeCompletion aligns completed_at for every task in a
	// column with whether the column title denotes completion, e.g.
	// after a rename to or from "Done".
	RecomputeCompletion(ctx context.Context, columnID string, done bool) error
	SetAssignees(ctx context.Context, id string, memberIDs []string) error
	AdjustCommentCount(ctx context.Context, id string, delta int) error
	AdjustChecklistCount(ctx context.Context, id string, delta int) error
	Delete(ctx context.Context, id string) error
}
