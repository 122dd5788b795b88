package suggest

import (
	"context"

	"go.uber.org/fx"

	"github.com/TomToms55/trade-compass-be/internal/modules/config"
	health "github.com/TomToms55/trade-compass-be/internal/modules/health/service"
	market "github.com/TomToms55/trade-compass-be/internal/modules/market/service"
	"github.com/TomToms55/trade-compass-be/internal/modules/suggest/service"
	"github.com/TomToms55/trade-compass-be/pkg/logger"
	"github.com/TomToms55/trade-compass-be/pkg/schedule"
)

func newGradeSource(cfg *config.Config) service.GradeSource {
	if cfg.GradeFeed.UseMock {
		return service.NewMockGrades()
	}
	return service.NewGradeClient(cfg)
}

func newClassifier(cfg *config.Config, src service.GradeSource, catalog *market.Catalog, state *health.State) *service.Classifier {
	return service.NewClassifier(src, catalog, state, cfg.Assets)
}

func Module() fx.Option {
	return fx.Module("suggest",
		fx.Provide(
			newGradeSource, // service.GradeSource
			newClassifier,  // *service.Classifier
		),

		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, cl *service.Classifier, ctx context.Context) {
			task := schedule.NewTask("suggestions", cfg.SuggestInterval(), func(ctx context.Context) {
				suggestions, err := cl.Generate(ctx)
				if err != nil {
					// цикл бросаем, следующий тик пройдёт штатно
					logger.Error("suggestion pass failed: %v", err)
					return
				}
				logger.Info("suggestion pass done: %d suggestions", len(suggestions))
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
