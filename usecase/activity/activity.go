package activity

import (
	"context"

	"go.uber.org/zap"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/internal/infrastructure/journal"
	"github.com/boardflow/backend/repository"
	"github.com/boardflow/backend/usecase"
)

// Journal receives activity writes that could not reach the primary
// datastore; a background flusher replays them later.
type Journal interface {
	Enqueue(record journal.Record) error
}

// Recorder derives an activity entry and a notification from the
// curated subset of mutations and republishes a compound event on the
// board channel. Everything here is best-effort relative to the
// primary mutation: failures are logged, journaled, and swallowed.
type Recorder struct {
	activities    repository.ActivityRepository
	notifications repository.NotificationRepository
	publisher     usecase.EventPublisher
	journal       Journal
	logger        *zap.Logger
}

func NewRecorder(
	activities repository.ActivityRepository,
	notifications repository.NotificationRepository,
	publisher usecase.EventPublisher,
	jnl Journal,
	logger *zap.Logger,
) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		activities:    activities,
		notifications: notifications,
		publisher:     publisher,
		journal:       jnl,
		logger:        logger,
	}
}

// Record appends an activity entry and its notification, then emits
// the richer activity event on the board channel. It never returns an
// error: the mutation it describes has already succeeded.
func (r *Recorder) Record(ctx context.Context, boardID string, actor usecase.Actor, action, target, taskID string) {
	entry := domain.ActivityEntry{
		BoardID:  boardID,
		UserID:   actor.ID,
		UserName: actor.Name,
		Action:   action,
		Target:   target,
		TaskID:   taskID,
	}
	notification := domain.Notification{
		BoardID:   boardID,
		ActorName: actor.Name,
		Action:    action,
		Target:    target,
		Type:      domain.ClassifyAction(action),
	}

	persisted := true
	if _, err := r.activities.Append(ctx, &entry); err != nil {
		persisted = false
		r.logger.Error("failed to append activity entry",
			zap.String("board_id", boardID),
			zap.String("action", action),
			zap.Error(err))
	} else if _, err := r.notifications.Append(ctx, &notification); err != nil {
		persisted = false
		r.logger.Error("failed to append notification",
			zap.String("board_id", boardID),
			zap.String("action", action),
			zap.Error(err))
	}

	if !persisted && r.journal != nil {
		if err := r.journal.Enqueue(journal.Record{Entry: entry, Notification: notification}); err != nil {
			r.logger.Error("failed to journal activity write", zap.Error(err))
		}
	}

	// The compound event goes out either way: the row will eventually
	// exist via the journal, and realtime delivery is best-effort.
	r.publisher.Publish(domain.BoardChannel(boardID), domain.Event{
		Type:    domain.EventActivity,
		Payload: entry,
		User:    actor.Name,
		Action:  action,
		Target:  target,
	})
}

var _ usecase.ActivityRecorder = (*Recorder)(nil)

// UseCase serves the activity feed and notification surface.
type UseCase struct {
	activities    repository.ActivityRepository
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

func New(
	activities repository.ActivityRepository,
	notifications repository.NotificationRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		activities:    activities,
		notifications: notifications,
		logger:        logger,
	}
}

func (uc *UseCase) ListActivity(ctx context.Context, boardID string, limit int) ([]domain.ActivityEntry, error) {
	return uc.activities.ListByBoard(ctx, boardID, limit)
}

func (uc *UseCase) ListNotifications(ctx context.Context, boardID string, limit int) ([]domain.Notification, error) {
	return uc.notifications.ListByBoard(ctx, boardID, limit)
}

func (uc *UseCase) MarkNotificationRead(ctx context.Context, id string) (*domain.Notification, error) {
	return uc.notifications.MarkRead(ctx, id)
}

func (uc *UseCase) ClearNotifications(ctx context.Context, boardID string) error {
	return uc.notifications.ClearBoard(ctx, boardID)
}
