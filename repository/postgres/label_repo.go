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

type labelRepository struct {
	pool *pgxpool.Pool
}

// NewLabelRepository returns a Postgres-backed implementation of LabelRepository.
func NewLabelRepository(pool *pgxpool.Pool) repository.LabelRepository {
	return &labelRepository{pool: pool}
}

const labelFields = `id, board_id, name, color, bg_color, text_color, created_at, updated_at`

func (r *labelRepository) GetByID(ctx context.Context, id string) (*domain.Label, error) {
	const query = `SELECT ` + labelFields + ` FROM labels WHERE id = $1`
	return scanLabel(r.pool.QueryRow(ctx, query, id))
}

func (r *labelRepository) ListByBoard(ctx context.Context, boardID string) ([]domain.Label, error) {
	const query = `
	SELECT ` + labelFields + `
	FROM labels
	WHERE board_id = $1
	ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []domain.Label
	for rows.Next() {
		label, err := scanLabel(rows)
		if err != nil {
			return nil, err
		}
		labels = append(labels, *label)
	}
	return labels, rows.Err()
}

func (r *labelRepository) Create(ctx context.Context, label *domain.Label) (*domain.Label, error) {
	if label == nil {
		return nil, domain.ErrInvalidPayload
	}
	if label.ID == "" {
		label.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO labels (id, board_id, name, color, bg_color, text_color)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		label.ID,
		label.BoardID,
		label.Name,
		label.Color,
		label.BgColor,
		label.TextColor,
	).Scan(&label.CreatedAt, &label.UpdatedAt); err != nil {
		return nil, err
	}
	return label, nil
}

func (r *labelRepository) Update(ctx context.Context, label *domain.Label) error {
	if label == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE labels
	SET name = $2,
		color = $3,
		bg_color = $4,
		text_color = $5,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		label.ID,
		label.Name,
		label.Color,
		label.BgColor,
		label.TextColor,
	).Scan(&label.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrLabelNotFound
		}
		return err
	}
	return nil
}

func (r *labelRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM labels WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLabelNotFound
	}
	return nil
}

func scanLabel(row pgx.Row) (*domain.Label, error) {
	var label domain.Label
	if err := row.Scan(
		&label.ID,
		&label.BoardID,
		&label.Name,
		&label.Color,
		&label.BgColor,
		&label.TextColor,
		&label.CreatedAt,
		&label.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLabelNotFound
		}
		return nil, err
	}
	return &label, nil
}
