package notify

import (
	"go.uber.org/fx"

	"github.com/TomToms55/trade-compass-be/internal/modules/config"
	"github.com/TomToms55/trade-compass-be/internal/notify"
	"github.com/TomToms55/trade-compass-be/pkg/logger"
)

func newNotifier(cfg *config.Config) notify.Notifier {
	if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
		return notify.NewStdout()
	}
	t, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
	if err != nil {
		logger.Error("telegram notifier init failed, falling back to stdout: %v", err)
		return notify.NewStdout()
	}
	return t
}

func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			newNotifier,
		),
	)
}
