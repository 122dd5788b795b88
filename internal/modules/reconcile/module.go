package reconcile

import (
	"context"

	"go.uber.org/fx"

	"github.com/TomToms55/trade-compass-be/internal/models"
	"github.com/TomToms55/trade-compass-be/internal/modules/reconcile/service"
	"github.com/TomToms55/trade-compass-be/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("reconcile",
		fx.Provide(
			service.NewReconciler, // *service.Reconciler
		),

		fx.Invoke(func(lc fx.Lifecycle, r *service.Reconciler, events <-chan models.SignalEvent, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						for {
							select {
							case <-ctx.Done():
								return
							case ev, ok := <-events:
								if !ok {
									return
								}
								switch ev.Type {
								case models.EventError:
									logger.Error("signal feed error: %v", ev.Err)
								case models.EventBuy, models.EventSell:
									// разные символы могут обрабатываться параллельно:
									// выборки (symbol, side) не пересекаются
									go r.OnSignal(ctx, ev)
								}
							}
						}
					}()
					return nil
				},
			})
		}),
	)
}
