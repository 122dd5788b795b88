package market

import (
	"context"

	"go.uber.org/fx"

	"github.com/TomToms55/trade-compass-be/internal/modules/config"
	"github.com/TomToms55/trade-compass-be/internal/modules/market/service"
	"github.com/TomToms55/trade-compass-be/pkg/logger"
	"github.com/TomToms55/trade-compass-be/pkg/schedule"
)

func Module() fx.Option {
	return fx.Module("market",
		fx.Provide(
			service.NewCatalog,
		),

		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, catalog *service.Catalog, ctx context.Context) {
			task := schedule.NewTask("catalog-refresh", cfg.CatalogRefreshInterval(), func(ctx context.Context) {
				if err := catalog.Refresh(ctx); err != nil {
					logger.Error("catalog refresh failed: %v", err)
				}
			})

			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					task.Start(ctx)
					return nil
				},
				OnStop: func(_ context.Context) error {
					task.Stop()
					return nil
				},
			})
		}),
	)
}
