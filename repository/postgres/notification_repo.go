package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/repository"
)

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository returns a Postgres-backed implementation of NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) repository.NotificationRepository {
	return &notificationRepository{pool: pool}
}

const notificationFields = `id, board_id, actor_name, action, target, type, is_read, created_at`

func (r *notificationRepository) Append(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	if notification == nil {
		return nil, domain.ErrInvalidPayload
	}
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.Type == "" {
		notification.Type = domain.ClassifyAction(notification.Action)
	}

	// Upsert keyed on id so a journal replay of an already-persisted
	// notification does not produce a duplicate row.
	const query = `
	INSERT INTO notifications (id, board_id, actor_name, action, target, type)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET action = EXCLUDED.action
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		notification.ID,
		notification.BoardID,
		notification.ActorName,
		notification.Action,
		notification.Target,
		notification.Type,
	).Scan(&notification.CreatedAt); err != nil {
		return nil, err
	}
	return notification, nil
}

func (r *notificationRepository) ListByBoard(ctx context.Context, boardID string, limit int) ([]domain.Notification, error) {
	const query = `
	SELECT ` + notificationFields + `
	FROM notifications
	WHERE board_id = $1
	ORDER BY created_at DESC
	LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, boardID, clampLimit(limit, 20))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *notification)
	}
	return notifications, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) (*domain.Notification, error) {
	const query = `
	UPDATE notifications
	SET is_read = TRUE
	WHERE id = $1
	RETURNING ` + notificationFields
	notification, err := scanNotification(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, err
	}
	return notification, nil
}

func (r *notificationRepository) ClearBoard(ctx context.Context, boardID string) error {
	const query = `DELETE FROM notifications WHERE board_id = $1`
	_, err := r.pool.Exec(ctx, query, boardID)
	return err
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var notification domain.Notification
	if err := row.Scan(
		&notification.ID,
		&notification.BoardID,
		&notification.ActorName,
		&notification.Action,
		&notification.Target,
		&notification.Type,
		&notification.IsRead,
		&notification.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}
