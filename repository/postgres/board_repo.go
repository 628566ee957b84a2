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

type boardRepository struct {
	pool *pgxpool.Pool
}

// NewBoardRepository returns a Postgres-backed implementation of BoardRepository.
func NewBoardRepository(pool *pgxpool.Pool) repository.BoardRepository {
	return &boardRepository{pool: pool}
}

const boardColumns = `id, name, description, color, visibility, created_at, updated_at`

func (r *boardRepository) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	const query = `SELECT ` + boardColumns + ` FROM boards WHERE id = $1`
	return scanBoard(r.pool.QueryRow(ctx, query, id))
}

func (r *boardRepository) List(ctx context.Context) ([]domain.Board, error) {
	const query = `SELECT ` + boardColumns + ` FROM boards ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []domain.Board
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, *board)
	}
	return boards, rows.Err()
}

func (r *boardRepository) Create(ctx context.Context, board *domain.Board) (*domain.Board, error) {
	if board == nil {
		return nil, domain.ErrInvalidPayload
	}
	if board.ID == "" {
		board.ID = uuid.NewString()
	}
	if board.Visibility == "" {
		board.Visibility = domain.VisibilityPrivate
	}

	const query = `
	INSERT INTO boards (id, name, description, color, visibility)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		board.ID,
		board.Name,
		board.Description,
		board.Color,
		board.Visibility,
	).Scan(&board.CreatedAt, &board.UpdatedAt); err != nil {
		return nil, err
	}
	return board, nil
}

func (r *boardRepository) Update(ctx context.Context, board *domain.Board) error {
	if board == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE boards
	SET name = $2,
		description = $3,
		color = $4,
		visibility = $5,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		board.ID,
		board.Name,
		board.Description,
		board.Color,
		board.Visibility,
	).Scan(&board.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrBoardNotFound
		}
		return err
	}
	return nil
}

func (r *boardRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM boards WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBoardNotFound
	}
	return nil
}

func scanBoard(row pgx.Row) (*domain.Board, error) {
	var board domain.Board
	if err := row.Scan(
		&board.ID,
		&board.Name,
		&board.Description,
		&board.Color,
		&board.Visibility,
		&board.CreatedAt,
		&board.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}
