package repository

import (
	"context"

	"github.com/boardflow/backend/domain"
)

type MemberRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	ListByBoard(ctx context.Context, boardID string) ([]domain.Member, error)
	Create(ctx context.Context, member *domain.Member) (*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	Delete(ctx context.Context, id string) error
}
