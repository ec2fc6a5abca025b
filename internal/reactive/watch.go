package reactive

import (
	"context"
	"log/slog"
)

// QueryFunc evaluates one live query against the store.
type QueryFunc func() (any, error)

// MatchFunc decides whether an event affects a query's input set.
type MatchFunc func(Event) bool

// Subscription is one live query. Updates carries the query result:
// first the state at subscription time, then a fresh result after every
// settled batch of matching writes. Results are conflated — a consumer
// that falls behind skips intermediate states and gets the newest one.
type Subscription struct {
	updates chan any
	cancel  func()
}

// Updates returns the result channel. It is closed when the
// subscription ends.
func (s *Subscription) Updates() <-chan any {
	return s.updates
}

// Close ends the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.cancel()
}

// Watch evaluates query immediately, delivers that result, and then
// re-evaluates whenever the broker announces a matching event. A single
// goroutine evaluates serially, which makes delivery monotonic; pending
// matching events are drained before each evaluation so bursts of writes
// settle into one redelivery. Non-matching events never trigger an
// evaluation.
func Watch(ctx context.Context, broker Broker, match MatchFunc, query QueryFunc) (*Subscription, error) {
	initial, err := query()
	if err != nil {
		return nil, err
	}

	events, cancelEvents := broker.Subscribe(ctx)
	sub := &Subscription{
		updates: make(chan any, 1),
		cancel:  cancelEvents,
	}
	sub.deliver(initial)

	go func() {
		defer close(sub.updates)
		for {
			select {
			case <-ctx.Done():
				cancelEvents()
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if !match(ev) {
					continue
				}
				drainMatching(events)

				result, err := query()
				if err != nil {
					// The failure is scoped to this evaluation; the
					// subscriber keeps its last good result.
					slog.Error("live query re-evaluation failed", "error", err)
					continue
				}
				sub.deliver(result)
			}
		}
	}()

	return sub, nil
}

// deliver conflates: if the consumer has not taken the previous result
// yet, it is replaced by the newer one.
func (s *Subscription) deliver(result any) {
	for {
		select {
		case s.updates <- result:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}

// drainMatching consumes events already queued, so one evaluation covers
// the whole burst.
func drainMatching(events <-chan Event) {
	for {
		select {
		case <-events:
		default:
			return
		}
	}
}
