package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/internal/infrastructure/journal"
)

type fakeActivities struct {
	appendedIDs []string
}

func (f *fakeActivities) Append(_ context.Context, entry *domain.ActivityEntry) (*domain.ActivityEntry, error) {
	f.appendedIDs = append(f.appendedIDs, entry.ID)
	entry.CreatedAt = time.Now()
	return entry, nil
}

func (f *fakeActivities) ListByBoard(context.Context, string, int) ([]domain.ActivityEntry, error) {
	return nil, nil
}

type fakeNotifications struct {
	appendedIDs []string
	failures    int
}

func (f *fakeNotifications) Append(_ context.Context, notification *domain.Notification) (*domain.Notification, error) {
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("connection refused")
	}
	f.appendedIDs = append(f.appendedIDs, notification.ID)
	notification.CreatedAt = time.Now()
	return notification, nil
}

func (f *fakeNotifications) ListByBoard(context.Context, string, int) ([]domain.Notification, error) {
	return nil, nil
}

func (f *fakeNotifications) MarkRead(context.Context, string) (*domain.Notification, error) {
	return nil, nil
}

func (f *fakeNotifications) ClearBoard(context.Context, string) error { return nil }

func openTestStore(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDrainReplaysRecord(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	activities := &fakeActivities{}
	notifications := &fakeNotifications{}
	jf := NewJournalFlusher(store, nil, activities, notifications, zap.NewNop(), FlusherConfig{
		Interval: time.Minute,
	})

	err := jf.Enqueue(journal.Record{
		Entry:        domain.ActivityEntry{BoardID: "board-1", UserName: "ada", Action: "created the task", Target: "Ship it"},
		Notification: domain.Notification{BoardID: "board-1", ActorName: "ada", Action: "created the task", Target: "Ship it"},
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := jf.Drain(context.Background()); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(activities.appendedIDs) != 1 || len(notifications.appendedIDs) != 1 {
		t.Fatalf("appends = %d activity, %d notification, want 1 and 1",
			len(activities.appendedIDs), len(notifications.appendedIDs))
	}
	if activities.appendedIDs[0] == "" {
		t.Error("replayed entry has empty id")
	}
	if jf.Size() != 0 {
		t.Errorf("journal size after drain = %d, want 0", jf.Size())
	}
}

func TestDrainRetryKeepsRowIDs(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	activities := &fakeActivities{}
	notifications := &fakeNotifications{failures: 1}
	jf := NewJournalFlusher(store, nil, activities, notifications, zap.NewNop(), FlusherConfig{
		Interval: time.Minute,
	})

	err := jf.Enqueue(journal.Record{
		Entry:        domain.ActivityEntry{BoardID: "board-1", UserName: "ada", Action: "updated the task", Target: "Ship it"},
		Notification: domain.Notification{BoardID: "board-1", ActorName: "ada", Action: "updated the task", Target: "Ship it"},
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	// The notification append fails, so the record stays journaled.
	if err := jf.Drain(context.Background()); err != nil {
		t.Fatalf("first drain: %v", err)
	}
	if jf.Size() != 1 {
		t.Fatalf("journal size after failed drain = %d, want 1", jf.Size())
	}

	if err := jf.Drain(context.Background()); err != nil {
		t.Fatalf("second drain: %v", err)
	}
	if jf.Size() != 0 {
		t.Errorf("journal size after retry = %d, want 0", jf.Size())
	}

	if len(activities.appendedIDs) != 2 {
		t.Fatalf("activity appends = %d, want 2", len(activities.appendedIDs))
	}
	if activities.appendedIDs[0] == "" {
		t.Fatal("replayed entry has empty id")
	}
	if activities.appendedIDs[0] != activities.appendedIDs[1] {
		t.Errorf("retry appended entry id %q, want %q from the first attempt",
			activities.appendedIDs[1], activities.appendedIDs[0])
	}
	if len(notifications.appendedIDs) != 1 || notifications.appendedIDs[0] == "" {
		t.Errorf("notification appends = %v, want one non-empty id", notifications.appendedIDs)
	}
}

func TestDrainDropsRecordAtMaxRetries(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	activities := &fakeActivities{}
	notifications := &fakeNotifications{failures: 10}
	jf := NewJournalFlusher(store, nil, activities, notifications, zap.NewNop(), FlusherConfig{
		Interval:   time.Minute,
		MaxRetries: 2,
	})

	err := jf.Enqueue(journal.Record{
		Entry:        domain.ActivityEntry{BoardID: "board-1", UserName: "ada", Action: "deleted the task", Target: "Ship it"},
		Notification: domain.Notification{BoardID: "board-1", ActorName: "ada", Action: "deleted the task", Target: "Ship it"},
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := jf.Drain(context.Background()); err != nil {
			t.Fatalf("drain %d: %v", i, err)
		}
	}
	if jf.Size() != 0 {
		t.Errorf("journal size after exhausting retries = %d, want 0", jf.Size())
	}
}
