package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/polkiloo/checkout/internal/domain/model"
)

// Publisher sends order events through the shared producer connection.
type Publisher struct {
	producer *Producer
	topic    string
	logger   *slog.Logger
}

// NewPublisher constructs a publisher bound to the configured topic.
func NewPublisher(producer *Producer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{producer: producer, topic: topic, logger: logger}
}

// Publish encodes the event and sends a single message keyed by key. The key is
// the broker partitioning attribute: all of one user's events land on the same
// ordered partition. There is no internal retry; a transport failure reports a
// disconnect to the lifecycle so the next publish reconnects.
func (p *Publisher) Publish(ctx context.Context, key string, event model.OrderEvent) error {
	handle, err := p.producer.Acquire(ctx)
	if err != nil {
		return &PublishError{Err: err}
	}

	value, err := json.Marshal(event)
	if err != nil {
		return &PublishError{Err: fmt.Errorf("encode event: %w", err)}
	}

	if err := handle.Send(ctx, p.topic, []byte(key), value); err != nil {
		p.producer.Invalidate(handle)
		return &PublishError{Err: &SendError{Err: err}}
	}

	p.logger.Info("order event published",
		slog.String("topic", p.topic),
		slog.String("event_id", event.EventID),
		slog.String("key", key),
	)
	return nil
}
