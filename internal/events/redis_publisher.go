package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher forwards events as JSON to a Redis pub/sub channel so other
// processes can follow ticket activity.
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisPublisher returns a publisher; a nil client makes it a no-op.
func NewRedisPublisher(client redis.UniversalClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Handle is an EventHandler that publishes the event.
func (p *RedisPublisher) Handle(ctx context.Context, event Event) error {
	if p == nil || p.client == nil {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, body).Err()
}

// SubscribeAll registers the publisher for every event type.
func (p *RedisPublisher) SubscribeAll(d Dispatcher) {
	for _, eventType := range []EventType{EventTicketCreated, EventTicketUpdated, EventTicketDeleted, EventCommentAdded} {
		d.Subscribe(eventType, p.Handle)
	}
}
