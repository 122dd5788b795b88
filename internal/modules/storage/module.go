package storage

import (
	"go.uber.org/fx"

	reconcile "github.com/TomToms55/trade-compass-be/internal/modules/reconcile/service"
	"github.com/TomToms55/trade-compass-be/internal/modules/storage/service/pg"
)

func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(
			pg.NewPosition,
			pg.NewCredential,
			func(p *pg.Position) reconcile.PositionStore { return p },
			func(c *pg.Credential) reconcile.CredentialStore { return c },
		),
	)
}
