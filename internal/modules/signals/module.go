package signals

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/TomToms55/trade-compass-be/internal/models"
	"github.com/TomToms55/trade-compass-be/internal/modules/config"
	health "github.com/TomToms55/trade-compass-be/internal/modules/health/service"
	market "github.com/TomToms55/trade-compass-be/internal/modules/market/service"
	"github.com/TomToms55/trade-compass-be/internal/modules/signals/service"
)

func newEventsChan() chan models.SignalEvent {
	return make(chan models.SignalEvent, 256)
}
func asSendOnlyEvents(ch chan models.SignalEvent) chan<- models.SignalEvent { return ch }
func asRecvOnlyEvents(ch chan models.SignalEvent) <-chan models.SignalEvent { return ch }

func newSource(cfg *config.Config) service.TradingSignalSource {
	if cfg.SignalFeed.UseMock {
		return service.NewMockFeed(cfg)
	}
	return service.NewFeedClient(cfg)
}

func newPoller(cfg *config.Config, src service.TradingSignalSource, catalog *market.Catalog, out chan<- models.SignalEvent, state *health.State) *service.Poller {
	return service.NewPoller(src, catalog, out, state, cfg.SignalPollInterval())
}

func Module() fx.Option {
	return fx.Module("signals",
		fx.Provide(
			newEventsChan,    // chan models.SignalEvent
			asSendOnlyEvents, // chan<- models.SignalEvent
			asRecvOnlyEvents, // <-chan models.SignalEvent
			newSource,        // service.TradingSignalSource
			newPoller,        // *service.Poller
		),

		fx.Invoke(func(lc fx.Lifecycle, p *service.Poller, state *health.State, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					// даём каталогу прогреться до первого резолва символов
					go func() {
						time.Sleep(time.Second)
						p.Start(ctx)
						state.SetReady(true)
					}()
					return nil
				},
				OnStop: func(_ context.Context) error {
					p.Stop()
					return nil
				},
			})
		}),
	)
}
