package exchange

import (
	"context"

	"go.uber.org/fx"

	"github.com/TomToms55/trade-compass-be/internal/modules/config"
	"github.com/TomToms55/trade-compass-be/internal/modules/exchange/service"
)

func newGateway(cfg *config.Config, prices *service.PriceCache) (service.Gateway, *service.Client) {
	client := service.NewClient(cfg, prices)
	if cfg.Exchange.UseMock {
		return service.NewMockGateway(prices), client
	}
	return client, client
}

func Module() fx.Option {
	return fx.Module("exchange",
		fx.Provide(
			service.NewPriceCache,
			newGateway, // service.Gateway + *service.Client
		),

		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, client *service.Client, ctx context.Context) {
			if !cfg.Exchange.StreamTickers {
				return
			}
			symbols := make([]string, 0, len(cfg.Assets))
			for _, a := range cfg.Assets {
				symbols = append(symbols, a+"USDC")
			}
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go client.StreamTickers(ctx, symbols)
					return nil
				},
			})
		}),
	)
}
