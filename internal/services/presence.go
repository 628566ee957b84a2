package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Presence tracks which viewers currently hold a stream connection to
// a board. Entries live in a per-board redis hash and expire on their
// own if a client vanishes without a clean disconnect.
type Presence struct {
	client *redislib.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewPresence(client *redislib.Client, ttl time.Duration, logger *zap.Logger) *Presence {
	if ttl <= 0 {
		ttl = 90 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Presence{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Join records viewer as watching board and refreshes the hash TTL.
// Called again on every keepalive tick, so a live connection never
// ages out.
func (p *Presence) Join(ctx context.Context, boardID, viewer string) {
	if p.client == nil || boardID == "" || viewer == "" {
		return
	}
	key := p.key(boardID)
	pipe := p.client.Pipeline()
	pipe.HSet(ctx, key, viewer, time.Now().UnixMilli())
	pipe.Expire(ctx, key, p.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		p.logger.Warn("presence join failed", zap.String("board_id", boardID), zap.Error(err))
	}
}

// Leave removes viewer from the board's presence set.
func (p *Presence) Leave(ctx context.Context, boardID, viewer string) {
	if p.client == nil || boardID == "" || viewer == "" {
		return
	}
	if err := p.client.HDel(ctx, p.key(boardID), viewer).Err(); err != nil {
		p.logger.Warn("presence leave failed", zap.String("board_id", boardID), zap.Error(err))
	}
}

// Viewers returns the viewers seen within the TTL window, dropping any
// stale entries it finds on the way.
func (p *Presence) Viewers(ctx context.Context, boardID string) ([]string, error) {
	if p.client == nil {
		return []string{}, nil
	}

	entries, err := p.client.HGetAll(ctx, p.key(boardID)).Result()
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-p.ttl).UnixMilli()
	viewers := make([]string, 0, len(entries))
	var stale []string
	for viewer, raw := range entries {
		seen, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || seen < cutoff {
			stale = append(stale, viewer)
			continue
		}
		viewers = append(viewers, viewer)
	}

	if len(stale) > 0 {
		if err := p.client.HDel(ctx, p.key(boardID), stale...).Err(); err != nil {
			p.logger.Warn("presence cleanup failed", zap.String("board_id", boardID), zap.Error(err))
		}
	}
	return viewers, nil
}

func (p *Presence) key(boardID string) string {
	return fmt.Sprintf("presence:board:%s", boardID)
}
