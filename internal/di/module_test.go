package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/polkiloo/checkout/internal/app"
	"github.com/polkiloo/checkout/internal/config"
	"github.com/polkiloo/checkout/internal/domain/repository"
	"github.com/polkiloo/checkout/internal/storage/postgres"
	"github.com/polkiloo/checkout/internal/storage/redis"
	"github.com/polkiloo/checkout/internal/test"
	"go.uber.org/fx"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:        ":0",
		DatabaseURI:       "postgres://stub",
		RedisAddress:      "localhost:0",
		KafkaBrokers:      []string{"localhost:0"},
		KafkaTopic:        "orders",
		KafkaClientID:     "checkout-test",
		KafkaDialTimeout:  time.Millisecond,
		AuthSecret:        "secret",
		RepublishInterval: time.Millisecond,
		RepublishBatch:    1,
		WorkerPoolSize:    1,
		ShutdownTimeout:   time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	orderRepo := &test.OrderRepositoryStub{}
	catalogRepo := &test.CatalogRepositoryStub{}
	cartRepo := &test.CartRepositoryStub{}

	var facade *app.CheckoutFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(&redis.CartStore{}),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.CatalogRepository(catalogRepo)),
			fx.Replace(repository.CartRepository(cartRepo)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected checkout facade instance")
	}
}
