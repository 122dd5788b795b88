package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/TomToms55/trade-compass-be/internal/modules/config"
	"github.com/TomToms55/trade-compass-be/internal/modules/exchange"
	"github.com/TomToms55/trade-compass-be/internal/modules/health"
	"github.com/TomToms55/trade-compass-be/internal/modules/market"
	"github.com/TomToms55/trade-compass-be/internal/modules/notify"
	"github.com/TomToms55/trade-compass-be/internal/modules/postgres"
	"github.com/TomToms55/trade-compass-be/internal/modules/reconcile"
	"github.com/TomToms55/trade-compass-be/internal/modules/signals"
	"github.com/TomToms55/trade-compass-be/internal/modules/storage"
	"github.com/TomToms55/trade-compass-be/internal/modules/suggest"
	"github.com/TomToms55/trade-compass-be/pkg/logger"
	"github.com/TomToms55/trade-compass-be/pkg/tracing"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		postgres.Module(),
		storage.Module(),
		exchange.Module(),
		market.Module(),
		signals.Module(),
		suggest.Module(),
		reconcile.Module(),
		notify.Module(),
		health.Module(),

		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				ServiceName: cfg.Service.Name,
				Host:        cfg.Jaeger.Host,
				Port:        cfg.Jaeger.Port,
				Disabled:    cfg.Jaeger.Disabled,
			})
			if err != nil {
				return err
			}
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					closeTracer()
					return nil
				},
			})
			return nil
		}),
	)
	app.Run()
}
