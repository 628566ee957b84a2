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

type checklistRepository struct {
	pool *pgxpool.Pool
}

// NewChecklistRepository returns a Postgres-backed implementation of ChecklistRepository.
func NewChecklistRepository(pool *pgxpool.Pool) repository.ChecklistRepository {
	return &checklistRepository{pool: pool}
}

const checklistFields = `id, task_id, text, is_checked, position, created_at, updated_at`

func (r *checklistRepository) GetByID(ctx context.Context, id string) (*domain.ChecklistItem, error) {
	const query = `SELECT ` + checklistFields + ` FROM checklist_items WHERE id = $1`
	return scanChecklistItem(r.pool.QueryRow(ctx, query, id))
}

func (r *checklistRepository) ListByTask(ctx context.Context, taskID string) ([]domain.ChecklistItem, error) {
	const query = `
	SELECT ` + checklistFields + `
	FROM checklist_items
	WHERE task_id = $1
	ORDER BY position ASC, created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ChecklistItem
	for rows.Next() {
		item, err := scanChecklistItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *checklistRepository) Create(ctx context.Context, item *domain.ChecklistItem) (*domain.ChecklistItem, error) {
	if item == nil {
		return nil, domain.ErrInvalidPayload
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO checklist_items (id, task_id, text, is_checked, position)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		item.ID,
		item.TaskID,
		item.Text,
		item.IsChecked,
		item.Order,
	).Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *checklistRepository) Update(ctx context.Context, item *domain.ChecklistItem) error {
	if item == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE checklist_items
	SET text = $2,
		is_checked = $3,
		position = $4,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		item.ID,
		item.Text,
		item.IsChecked,
		item.Order,
	).Scan(&item.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrChecklistItemNotFound
		}
		return err
	}
	return nil
}

func (r *checklistRepository) UpdatePositions(ctx context.Context, updates []repository.PositionUpdate) error {
	const query = `UPDATE checklist_items SET position = $2, updated_at = NOW() WHERE id = $1`
	return applyPositions(ctx, r.pool, query, updates)
}

func (r *checklistRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM checklist_items WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrChecklistItemNotFound
	}
	return nil
}

func scanChecklistItem(row pgx.Row) (*domain.ChecklistItem, error) {
	var item domain.ChecklistItem
	if err := row.Scan(
		&item.ID,
		&item.TaskID,
		&item.Text,
		&item.IsChecked,
		&item.Order,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChecklistItemNotFound
		}
		return nil, err
	}
	return &item, nil
}
