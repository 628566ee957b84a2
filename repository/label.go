package repository

import (
	"context"

	"github.com/boardflow/backend/domain"
)

type LabelRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Label, error)
	ListByBoard(ctx context.Context, boardID string) ([]domain.Label, error)
	Create(ctx context.Context, label *domain.Label) (*domain.Label, error)
	Update(ctx context.Context, label *domain.Label) error
	Delete(ctx context.Context, id string) error
}
