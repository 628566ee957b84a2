package repository

import (
	"context"

	"github.com/boardflow/backend/domain"
)

type ColumnRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Column, error)
	// ListByBoard returns columns sorted by (order, created_at).
	ListByBoard(ctx context.Context, boardID string) ([]domain.Column, error)
	Create(ctx context.Context, column *domain.Column) (*domain.Column, error)
	Update(ctx context.Context, column *domain.Column) error
	// UpdatePositions applies a renumbering pass in one batch.
	UpdatePositions(ctx context.Context, updates []PositionUpdate) error
	Delete(ctx context.Context, id string) error
}
