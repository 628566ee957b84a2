package repository

import (
	"context"

	"github.com/boardflow/backend/domain"
)

// PositionUpdate is one (id, order) write produced by a reorder pass.
type PositionUpdate struct {
	ID    string
	Order int
}

type BoardRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	List(ctx context.Context) ([]domain.Board, error)
	Create(ctx context.Context, board *domain.Board) (*domain.Board, error)
	Update(ctx context.Context, board *domain.Board) error
	// Delete cascades to every owned entity.
	Delete(ctx context.Context, id string) error
}
