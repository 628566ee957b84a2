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

type columnRepository struct {
	pool *pgxpool.Pool
}

// NewColumnRepository returns a Postgres-backed implementation of ColumnRepository.
func NewColumnRepository(pool *pgxpool.Pool) repository.ColumnRepository {
	return &columnRepository{pool: pool}
}

const columnFields = `id, board_id, title, color, position, created_at, updated_at`

func (r *columnRepository) GetByID(ctx context.Context, id string) (*domain.Column, error) {
	const query = `SELECT ` + columnFields + ` FROM columns WHERE id = $1`
	return scanColumn(r.pool.QueryRow(ctx, query, id))
}

func (r *columnRepository) ListByBoard(ctx context.Context, boardID string) ([]domain.Column, error) {
	const query = `
	SELECT ` + columnFields + `
	FROM columns
	WHERE board_id = $1
	ORDER BY position ASC, created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []domain.Column
	for rows.Next() {
		column, err := scanColumn(rows)
		if err != nil {
			return nil, err
		}
		columns = append(columns, *column)
	}
	return columns, rows.Err()
}

func (r *columnRepository) Create(ctx context.Context, column *domain.Column) (*domain.Column, error) {
	if column == nil {
		return nil, domain.ErrInvalidPayload
	}
	if column.ID == "" {
		column.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO columns (id, board_id, title, color, position)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		column.ID,
		column.BoardID,
		column.Title,
		column.Color,
		column.Order,
	).Scan(&column.CreatedAt, &column.UpdatedAt); err != nil {
		return nil, err
	}
	return column, nil
}

func (r *columnRepository) Update(ctx context.Context, column *domain.Column) error {
	if column == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE columns
	SET title = $2,
		color = $3,
		position = $4,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		column.ID,
		column.Title,
		column.Color,
		column.Order,
	).Scan(&column.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrColumnNotFound
		}
		return err
	}
	return nil
}

func (r *columnRepository) UpdatePositions(ctx context.Context, updates []repository.PositionUpdate) error {
	const query = `UPDATE columns SET position = $2, updated_at = NOW() WHERE id = $1`
	return applyPositions(ctx, r.pool, query, updates)
}

func (r *columnRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM columns WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrColumnNotFound
	}
	return nil
}

func scanColumn(row pgx.Row) (*domain.Column, error) {
	var column domain.Column
	if err := row.Scan(
		&column.ID,
		&column.BoardID,
		&column.Title,
		&column.Color,
		&column.Order,
		&column.CreatedAt,
		&column.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrColumnNotFound
		}
		return nil, err
	}
	return &column, nil
}
