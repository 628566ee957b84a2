package repository

import (
	"context"

	"github.com/boardflow/backend/domain"
)

type ChecklistRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ChecklistItem, error)
	// ListByTask returns items sorted by (order, created_at).
	ListByTask(ctx context.Context, taskID string) ([]domain.ChecklistItem, error)
	Create(ctx context.Context, item *domain.ChecklistItem) (*domain.ChecklistItem, error)
	Update(ctx context.Context, item *domain.ChecklistItem) error
	UpdatePositions(ctx context.Context, updates []PositionUpdate) error
	Delete(ctx context.Context, id string) error
}
