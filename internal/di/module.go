package di

import (
	"github.com/polkiloo/checkout/internal/app"
	"github.com/polkiloo/checkout/internal/broker"
	"github.com/polkiloo/checkout/internal/config"
	"github.com/polkiloo/checkout/internal/logger"
	"github.com/polkiloo/checkout/internal/pkg/auth"
	"github.com/polkiloo/checkout/internal/server/http/handlers"
	"github.com/polkiloo/checkout/internal/server/http/router"
	"github.com/polkiloo/checkout/internal/storage/postgres"
	"github.com/polkiloo/checkout/internal/storage/redis"
	"github.com/polkiloo/checkout/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		redis.Module,
		broker.Module,
		usecase.Module,
		fx.Provide(func(p *broker.Publisher) usecase.EventPublisher { return p }),
		fx.Provide(func(f *app.CheckoutFacade) handlers.CheckoutFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
