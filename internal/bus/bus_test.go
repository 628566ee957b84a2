package bus

import (
	"sync"
	"testing"

	"github.com/boardflow/backend/domain"
)

func TestPublishDeliversToAllSubscribers(t *testing.T) {
	t.Parallel()
	b := New(nil)

	var first, second []domain.Event
	b.Subscribe("board-1", func(e domain.Event) { first = append(first, e) })
	b.Subscribe("board-1", func(e domain.Event) { second = append(second, e) })

	b.Publish("board-1", domain.Event{Type: domain.EventTaskCreated})

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("delivery counts: got %d and %d, want 1 and 1", len(first), len(second))
	}
	if first[0].Type != domain.EventTaskCreated {
		t.Errorf("event type: got %q, want %q", first[0].Type, domain.EventTaskCreated)
	}
}

func TestPublishWithoutSubscribersIsSilent(t *testing.T) {
	t.Parallel()
	b := New(nil)
	// Must not panic or block.
	b.Publish("nobody-home", domain.Event{Type: domain.EventBoardUpdated})
}

func TestLateSubscriberReceivesNothing(t *testing.T) {
	t.Parallel()
	b := New(nil)

	b.Publish("board-1", domain.Event{Type: domain.EventTaskCreated})

	var got []domain.Event
	b.Subscribe("board-1", func(e domain.Event) { got = append(got, e) })
	if len(got) != 0 {
		t.Errorf("late subscriber received %d events, want 0", len(got))
	}
}

func TestNoCrossTalkBetweenChannels(t *testing.T) {
	t.Parallel()
	b := New(nil)

	var got []domain.Event
	b.Subscribe("task:t1", func(e domain.Event) { got = append(got, e) })

	b.Publish("board-1", domain.Event{Type: domain.EventColumnCreated})
	b.Publish("task:t2", domain.Event{Type: domain.EventCommentCreated})

	if len(got) != 0 {
		t.Errorf("subscriber on task:t1 received %d events from other channels, want 0", len(got))
	}
}

func TestPublishOrderPreserved(t *testing.T) {
	t.Parallel()
	b := New(nil)

	var got []domain.EventType
	b.Subscribe("board-1", func(e domain.Event) { got = append(got, e.Type) })

	want := []domain.EventType{
		domain.EventColumnCreated,
		domain.EventTaskCreated,
		domain.EventTaskMoved,
		domain.EventTaskDeleted,
	}
	for _, typ := range want {
		b.Publish("board-1", domain.Event{Type: typ})
	}

	if len(got) != len(want) {
		t.Fatalf("received %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()
	b := New(nil)

	var got int
	unsub := b.Subscribe("board-1", func(domain.Event) { got++ })

	b.Publish("board-1", domain.Event{Type: domain.EventTaskCreated})
	unsub()
	for i := 0; i < 10; i++ {
		b.Publish("board-1", domain.Event{Type: domain.EventTaskUpdated})
	}

	if got != 1 {
		t.Errorf("received %d events, want 1", got)
	}
	if n := b.SubscriberCount("board-1"); n != 0 {
		t.Errorf("subscriber count after unsubscribe: got %d, want 0", n)
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	t.Parallel()
	b := New(nil)

	unsubA := b.Subscribe("board-1", func(domain.Event) {})
	b.Subscribe("board-1", func(domain.Event) {})

	unsubA()
	unsubA()
	unsubA()

	if n := b.SubscriberCount("board-1"); n != 1 {
		t.Errorf("subscriber count: got %d, want 1 (double unsubscribe must not remove others)", n)
	}
}

func TestPanickingListenerDoesNotAffectOthers(t *testing.T) {
	t.Parallel()
	b := New(nil)

	var got int
	b.Subscribe("board-1", func(domain.Event) { panic("listener blew up") })
	b.Subscribe("board-1", func(domain.Event) { got++ })

	b.Publish("board-1", domain.Event{Type: domain.EventTaskCreated})

	if got != 1 {
		t.Errorf("healthy listener received %d events, want 1", got)
	}
}

func TestConcurrentSubscribePublish(t *testing.T) {
	t.Parallel()
	b := New(nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsub := b.Subscribe("board-1", func(domain.Event) {})
			b.Publish("board-1", domain.Event{Type: domain.EventTaskUpdated})
			unsub()
		}()
	}
	wg.Wait()

	if n := b.SubscriberCount("board-1"); n != 0 {
		t.Errorf("subscriber count after all unsubscribed: got %d, want 0", n)
	}
}
