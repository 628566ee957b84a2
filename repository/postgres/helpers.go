package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boardflow/backend/repository"
)

// applyPositions issues one UPDATE per renumbered sibling in a single
// pgx batch round trip.
func applyPositions(ctx context.Context, pool *pgxpool.Pool, query string, updates []repository.PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(query, u.ID, u.Order)
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()

	for range updates {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 || limit > 100 {
		return fallback
	}
	return limit
}
