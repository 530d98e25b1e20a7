package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const defaultDialTimeout = 10 * time.Second

// KafkaTransport dials Kafka and yields writer-backed handles.
type KafkaTransport struct {
	brokers     []string
	clientID    string
	dialTimeout time.Duration
}

// NewKafkaTransport constructs a transport for the given broker addresses.
func NewKafkaTransport(brokers []string, clientID string, dialTimeout time.Duration) *KafkaTransport {
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}
	return &KafkaTransport{brokers: brokers, clientID: clientID, dialTimeout: dialTimeout}
}

// Connect probes broker reachability and returns a sending handle. kafka-go
// writers dial lazily, so the probe gives Acquire its connect-or-fail
// semantics instead of deferring the failure to the first send.
func (t *KafkaTransport) Connect(ctx context.Context) (Handle, error) {
	if len(t.brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers configured")
	}

	dialer := &kafka.Dialer{Timeout: t.dialTimeout, ClientID: t.clientID, DualStack: true}
	conn, err := dialer.DialContext(ctx, "tcp", t.brokers[0])
	if err != nil {
		return nil, fmt.Errorf("dial kafka: %w", err)
	}
	if err := conn.Close(); err != nil {
		return nil, fmt.Errorf("close kafka probe: %w", err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(t.brokers...),
		Balancer:     &kafka.Hash{}, // same key -> same partition
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: t.dialTimeout,
	}
	return &kafkaHandle{writer: writer}, nil
}

type kafkaHandle struct {
	writer *kafka.Writer
}

func (h *kafkaHandle) Send(ctx context.Context, topic string, key, value []byte) error {
	return h.writer.WriteMessages(ctx, kafka.Message{Topic: topic, Key: key, Value: value})
}

func (h *kafkaHandle) Close() error {
	return h.writer.Close()
}
