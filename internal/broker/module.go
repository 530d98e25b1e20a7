package broker

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/checkout/internal/config"
)

// Module wires the kafka transport, producer lifecycle and event publisher.
var Module = fx.Options(
	fx.Provide(newTransport, newProducer, newPublisher),
	fx.Invoke(registerLifecycle),
)

func newTransport(cfg *config.Config) Transport {
	return NewKafkaTransport(cfg.KafkaBrokers, cfg.KafkaClientID, cfg.KafkaDialTimeout)
}

func newProducer(transport Transport, logger *slog.Logger) *Producer {
	return NewProducer(transport, logger)
}

type publisherParams struct {
	fx.In

	Producer *Producer
	Config   *config.Config
	Logger   *slog.Logger
}

func newPublisher(p publisherParams) *Publisher {
	return NewPublisher(p.Producer, p.Config.KafkaTopic, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, producer *Producer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return producer.Release(ctx)
		},
	})
}
