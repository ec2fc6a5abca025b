package reactive

import (
	"context"
	"sync"
)

// Broker fans change events out to subscribers. Implementations must
// never deliver events to a subscriber out of publication order, but may
// collapse a backlog into a single wildcard event.
type Broker interface {
	// Publish announces a store mutation to all current subscribers.
	Publish(ctx context.Context, ev Event) error

	// Subscribe returns a channel of events and a cancel function.
	// The channel is closed after cancel is called.
	Subscribe(ctx context.Context) (<-chan Event, func())
}

// subscriberBuffer bounds the per-subscriber event queue. A slow
// subscriber past this point gets its backlog collapsed to KindAll.
const subscriberBuffer = 16

// MemoryBroker is an in-process Broker for single-instance deployments
// and tests.
type MemoryBroker struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

// NewMemoryBroker returns an empty in-process broker.
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[int]chan Event)}
}

// Publish delivers the event to every subscriber without blocking.
// When a subscriber's queue is full, its backlog is replaced by one
// wildcard event so it still re-evaluates once it catches up.
func (b *MemoryBroker) Publish(_ context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// Queue full: drop one queued event, enqueue the wildcard.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- Event{Kind: KindAll}:
			default:
			}
		}
	}
	return nil
}

// Subscribe registers a new subscriber. The returned cancel function is
// idempotent.
func (b *MemoryBroker) Subscribe(_ context.Context) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}
