package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Event types published by the modules.
const (
	InventoryLowStock  = "inventory.low_stock"
	RewardDistributed  = "reward.distributed"
	BookingStatusShift = "booking.status_changed"
)

// Event is the envelope written to the bus.
type Event struct {
	Type       string      `json:"type"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// Publisher emits domain events. Publishing is best effort: callers log and continue on error.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

type redisPublisher struct {
	client  redis.Cmdable
	channel string
}

// NewRedisPublisher publishes JSON events on a Redis pub/sub channel.
func NewRedisPublisher(client redis.Cmdable, channel string) Publisher {
	return &redisPublisher{client: client, channel: channel}
}

func (p *redisPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload, OccurredAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, data).Err()
}

type logPublisher struct{ log *zap.Logger }

// NewLogPublisher writes events to the log when no broker is configured.
func NewLogPublisher(log *zap.Logger) Publisher { return &logPublisher{log: log} }

func (p *logPublisher) Publish(_ context.Context, eventType string, payload interface{}) error {
	p.log.Info("event", zap.String("type", eventType), zap.Any("payload", payload))
	return nil
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, interface{}) error { return nil }
