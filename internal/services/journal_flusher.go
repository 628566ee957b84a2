package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/boardflow/backend/internal/infrastructure/journal"
	"github.com/boardflow/backend/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// FlusherConfig controls how frequently the journal is drained.
type FlusherConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// JournalFlusher replays journaled activity and notification rows into
// postgres once it is reachable again.
type JournalFlusher struct {
	store         *journal.Store
	monitor       ConnectionHealth
	activities    repository.ActivityRepository
	notifications repository.NotificationRepository
	logger        *zap.Logger
	cron          *cron.Cron
	cfg           FlusherConfig
}

func NewJournalFlusher(
	store *journal.Store,
	monitor ConnectionHealth,
	activities repository.ActivityRepository,
	notifications repository.NotificationRepository,
	logger *zap.Logger,
	cfg FlusherConfig,
) *JournalFlusher {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	jf := &JournalFlusher{
		store:         store,
		monitor:       monitor,
		activities:    activities,
		notifications: notifications,
		logger:        logger,
		cfg:           cfg,
		cron:          cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = jf.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := jf.Drain(ctx); err != nil {
			jf.logger.Error("journal drain failed", zap.Error(err))
		}
	})

	return jf
}

// Start launches the cron scheduler.
func (jf *JournalFlusher) Start() {
	if jf == nil || jf.cron == nil {
		return
	}
	jf.cron.Start()
	jf.logger.Info("journal flusher started")
}

// Stop gracefully stops the scheduler.
func (jf *JournalFlusher) Stop(ctx context.Context) {
	if jf == nil || jf.cron == nil {
		return
	}
	stopCtx := jf.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	jf.logger.Info("journal flusher stopped")
}

// Drain replays journaled records synchronously.
func (jf *JournalFlusher) Drain(ctx context.Context) error {
	if jf == nil || jf.store == nil {
		return nil
	}
	if jf.monitor != nil && !jf.monitor.IsOnline() {
		jf.logger.Debug("skipping journal drain (offline)")
		return nil
	}

	records, err := jf.store.GetBatch(jf.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, record := range records {
		if err := jf.replay(ctx, record); err != nil {
			jf.logger.Error("failed to replay journal record",
				zap.String("record_id", record.ID),
				zap.String("board_id", record.Entry.BoardID),
				zap.Error(err))

			record.Retries++
			if record.Retries >= jf.cfg.MaxRetries {
				jf.logger.Warn("dropping journal record (max retries reached)", zap.String("record_id", record.ID))
				_ = jf.store.Remove(record)
				continue
			}

			if err := jf.store.Remove(record); err != nil {
				jf.logger.Warn("failed to remove journal record", zap.Error(err))
			}
			if err := jf.store.Requeue(record); err != nil {
				jf.logger.Error("failed to requeue journal record", zap.Error(err))
			}
			continue
		}

		if err := jf.store.Remove(record); err != nil {
			jf.logger.Warn("failed to purge replayed journal record", zap.Error(err))
		}
	}
	return nil
}

// Enqueue journals an activity write that could not reach postgres.
func (jf *JournalFlusher) Enqueue(record journal.Record) error {
	if jf == nil || jf.store == nil {
		return fmt.Errorf("journal flusher not configured")
	}
	return jf.store.Enqueue(record)
}

// Size returns the number of journaled records.
func (jf *JournalFlusher) Size() int {
	if jf == nil || jf.store == nil {
		return 0
	}
	size, err := jf.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (jf *JournalFlusher) replay(ctx context.Context, record journal.Record) error {
	if ctx == nil {
		ctx = context.Background()
	}

	entry := record.Entry
	if _, err := jf.activities.Append(ctx, &entry); err != nil {
		return err
	}

	notification := record.Notification
	if _, err := jf.notifications.Append(ctx, &notification); err != nil {
		return err
	}
	return nil
}
