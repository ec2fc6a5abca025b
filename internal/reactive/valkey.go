package reactive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// channel is the Valkey pub/sub channel carrying change events.
const channel = "menuboard:changes"

// ConnectValkey creates a Valkey client and verifies the connection with
// a ping.
func ConnectValkey(host, port, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return client, nil
}

// ValkeyBroker fans events out over Valkey pub/sub so every running
// instance (and every browser tab behind them) observes every write,
// whichever instance performed it.
type ValkeyBroker struct {
	client *redis.Client
}

// NewValkeyBroker returns a Broker backed by the given Valkey client.
func NewValkeyBroker(client *redis.Client) *ValkeyBroker {
	return &ValkeyBroker{client: client}
}

// Publish serializes the event and publishes it on the shared channel.
func (b *ValkeyBroker) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Subscribe opens a Valkey subscription and adapts it to an Event
// channel. Undecodable payloads are collapsed to the wildcard event
// rather than dropped, so subscribers still re-evaluate.
func (b *ValkeyBroker) Subscribe(ctx context.Context) (<-chan Event, func()) {
	pubsub := b.client.Subscribe(ctx, channel)
	out := make(chan Event, subscriberBuffer)

	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				slog.Error("undecodable change event", "error", err)
				ev = Event{Kind: KindAll}
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			pubsub.Close()
		})
	}
	return out, cancel
}
