package reactive

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

func recv(t *testing.T, ch <-chan any) any {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatal("updates channel closed unexpectedly")
		}
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an update")
		return nil
	}
}

func expectQuiet(t *testing.T, ch <-chan any) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected update: %v", v)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMemoryBrokerFanOut(t *testing.T) {
	b := NewMemoryBroker()
	ctx := context.Background()

	ch1, cancel1 := b.Subscribe(ctx)
	ch2, cancel2 := b.Subscribe(ctx)
	defer cancel1()
	defer cancel2()

	ev := Event{Kind: "categories"}
	if err := b.Publish(ctx, ev); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case got := <-ch:
			if got.Kind != "categories" {
				t.Errorf("got kind %q, want categories", got.Kind)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestMemoryBrokerCancelStopsDelivery(t *testing.T) {
	b := NewMemoryBroker()
	ctx := context.Background()

	ch, cancel := b.Subscribe(ctx)
	cancel()
	cancel() // idempotent

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}
	if err := b.Publish(ctx, Event{Kind: "branches"}); err != nil {
		t.Fatalf("Publish after cancel failed: %v", err)
	}
}

func TestMemoryBrokerOverflowCollapsesToWildcard(t *testing.T) {
	b := NewMemoryBroker()
	ctx := context.Background()

	ch, cancel := b.Subscribe(ctx)
	defer cancel()

	// Overfill the subscriber queue without reading.
	for i := 0; i < subscriberBuffer+5; i++ {
		b.Publish(ctx, Event{Kind: "products"})
	}

	sawWildcard := false
	for i := 0; i < subscriberBuffer; i++ {
		select {
		case ev := <-ch:
			if ev.Kind == KindAll {
				sawWildcard = true
			}
		default:
		}
	}
	if !sawWildcard {
		t.Error("overflowed subscriber should receive a wildcard event")
	}
}

func TestEventMatches(t *testing.T) {
	cid := uuid.New()

	ev := Event{Kind: "products", CategoryID: cid}
	if !ev.Matches("products") || ev.Matches("categories") {
		t.Error("kind matching wrong")
	}
	if !ev.MatchesCategory("products", cid) {
		t.Error("tagged product event should match its category")
	}
	if ev.MatchesCategory("products", uuid.New()) {
		t.Error("tagged product event should not match another category")
	}

	// Untagged product events may affect any category.
	untagged := Event{Kind: "products"}
	if !untagged.MatchesCategory("products", cid) {
		t.Error("untagged product event should match every category")
	}

	wild := Event{Kind: KindAll}
	if !wild.Matches("branches") || !wild.MatchesCategory("products", cid) {
		t.Error("wildcard should match everything")
	}
}

func TestWatchDeliversInitialResult(t *testing.T) {
	b := NewMemoryBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := Watch(ctx, b, func(Event) bool { return true }, func() (any, error) {
		return "state-0", nil
	})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer sub.Close()

	if got := recv(t, sub.Updates()); got != "state-0" {
		t.Errorf("initial result = %v, want state-0", got)
	}
}

func TestWatchRedeliversOnMatchingEvent(t *testing.T) {
	b := NewMemoryBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var state atomic.Int64
	sub, err := Watch(ctx, b,
		func(ev Event) bool { return ev.Matches("categories") },
		func() (any, error) { return state.Load(), nil },
	)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer sub.Close()

	if got := recv(t, sub.Updates()); got != int64(0) {
		t.Fatalf("initial result = %v, want 0", got)
	}

	state.Store(1)
	b.Publish(ctx, Event{Kind: "categories"})
	if got := recv(t, sub.Updates()); got != int64(1) {
		t.Errorf("after write, result = %v, want 1", got)
	}
}

func TestWatchIgnoresUnrelatedEvents(t *testing.T) {
	b := NewMemoryBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evaluations := atomic.Int64{}
	sub, err := Watch(ctx, b,
		func(ev Event) bool { return ev.Matches("branches") },
		func() (any, error) { return evaluations.Add(1), nil },
	)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer sub.Close()
	recv(t, sub.Updates())

	// Writes to other kinds must not recompute this query.
	b.Publish(ctx, Event{Kind: "products"})
	b.Publish(ctx, Event{Kind: "categories"})
	expectQuiet(t, sub.Updates())
	if n := evaluations.Load(); n != 1 {
		t.Errorf("query evaluated %d times, want 1", n)
	}
}

func TestWatchMonotonicUnderBurst(t *testing.T) {
	b := NewMemoryBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var state atomic.Int64
	sub, err := Watch(ctx, b,
		func(ev Event) bool { return ev.Matches("products") },
		func() (any, error) { return state.Load(), nil },
	)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer sub.Close()
	recv(t, sub.Updates())

	// A burst of writes: intermediate states may be coalesced, but the
	// observed sequence must never go backwards and must end at the
	// final state.
	for i := 1; i <= 50; i++ {
		state.Store(int64(i))
		b.Publish(ctx, Event{Kind: "products"})
	}

	last := int64(0)
	deadline := time.After(2 * time.Second)
	for last != 50 {
		select {
		case v := <-sub.Updates():
			n := v.(int64)
			if n < last {
				t.Fatalf("non-monotonic delivery: %d after %d", n, last)
			}
			last = n
		case <-deadline:
			t.Fatalf("never observed the settled state, last = %d", last)
		}
	}
}
