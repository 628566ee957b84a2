// Package bus implements the in-process publish/subscribe router that
// fans mutation events out to stream subscribers. Delivery is
// synchronous, best-effort, and scoped to this server process; there
// is no retention and no cross-process reach.
package bus

import (
	"sync"

	"go.uber.org/zap"

	"github.com/boardflow/backend/domain"
)

// Listener receives every event published on a subscribed channel.
// Listeners are invoked synchronously on the publisher's goroutine and
// are expected to do no more than serialize-and-forward.
type Listener func(event domain.Event)

// UnsubscribeFunc deregisters exactly the listener it was returned
// for. Calling it more than once is a no-op.
type UnsubscribeFunc func()

type subscriber struct {
	id       uint64
	listener Listener
}

// Bus routes events by channel name. The zero value is not usable;
// construct with New and share the one instance by reference.
type Bus struct {
	logger *zap.Logger

	mu       sync.RWMutex
	nextID   uint64
	channels map[string][]subscriber
}

// New creates an empty bus.
func New(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		logger:   logger,
		channels: make(map[string][]subscriber),
	}
}

// Subscribe registers listener on channel and returns the capability
// that removes it again.
func (b *Bus) Subscribe(channel string, listener Listener) UnsubscribeFunc {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.channels[channel] = append(b.channels[channel], subscriber{id: id, listener: listener})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.remove(channel, id)
		})
	}
}

// Publish delivers event to every listener currently subscribed to
// channel, in subscription order, before returning. A panicking
// listener is recovered and logged; it never reaches the publisher.
// With zero subscribers the event is dropped silently.
func (b *Bus) Publish(channel string, event domain.Event) {
	b.mu.RLock()
	subs := make([]subscriber, len(b.channels[channel]))
	copy(subs, b.channels[channel])
	b.mu.RUnlock()

	for _, sub := range subs {
		b.dispatch(channel, sub, event)
	}
}

// SubscriberCount reports how many listeners channel currently has.
func (b *Bus) SubscriberCount(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.channels[channel])
}

func (b *Bus) dispatch(channel string, sub subscriber, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event listener panicked",
				zap.String("channel", channel),
				zap.String("event_type", string(event.Type)),
				zap.Any("panic", r))
		}
	}()
	sub.listener(event)
}

func (b *Bus) remove(channel string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.channels[channel]
	for i, sub := range subs {
		if sub.id == id {
			b.channels[channel] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.channels[channel]) == 0 {
		delete(b.channels, channel)
	}
}
