package repository

import (
	"context"

	"github.com/boardflow/backend/domain"
)

// ActivityRepository is append-only from the producer side; entries are
// removed only when their board is deleted.
type ActivityRepository interface {
	Append(ctx context.Context, entry *domain.ActivityEntry) (*domain.ActivityEntry, error)
	// ListByBoard returns the most recent limit entries, newest first.
	ListByBoard(ctx context.Context, boardID string, limit int) ([]domain.ActivityEntry, error)
}

type NotificationRepository interface {
	Append(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	// ListByBoard returns the most recent limit notifications, newest first.
	ListByBoard(ctx context.Context, boardID string, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) (*domain.Notification, error)
	// ClearBoard deletes all notifications for a board unconditionally.
	ClearBoard(ctx context.Context, boardID string) error
}
