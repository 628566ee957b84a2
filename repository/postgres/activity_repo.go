package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/repository"
)

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository returns a Postgres-backed implementation of ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) repository.ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Append(ctx context.Context, entry *domain.ActivityEntry) (*domain.ActivityEntry, error) {
	if entry == nil {
		return nil, domain.ErrInvalidPayload
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	// Upsert keyed on id so a journal replay of an already-persisted
	// entry does not produce a duplicate feed row.
	const query = `
	INSERT INTO activity_entries (id, board_id, user_id, user_name, action, target, task_id)
	VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
	ON CONFLICT (id) DO UPDATE SET action = EXCLUDED.action
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.BoardID,
		entry.UserID,
		entry.UserName,
		entry.Action,
		entry.Target,
		entry.TaskID,
	).Scan(&entry.CreatedAt); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *activityRepository) ListByBoard(ctx context.Context, boardID string, limit int) ([]domain.ActivityEntry, error) {
	const query = `
	SELECT id, board_id, user_id, user_name, action, target, COALESCE(task_id, ''), created_at
	FROM activity_entries
	WHERE board_id = $1
	ORDER BY created_at DESC
	LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, boardID, clampLimit(limit, 50))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ActivityEntry
	for rows.Next() {
		var entry domain.ActivityEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.BoardID,
			&entry.UserID,
			&entry.UserName,
			&entry.Action,
			&entry.Target,
			&entry.TaskID,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
