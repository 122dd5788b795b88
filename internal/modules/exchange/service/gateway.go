package service

import (
	"context"
	"errors"

	"github.com/TomToms55/trade-compass-be/internal/models"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidOrder      = errors.New("invalid order")
	ErrUnknownSymbol     = errors.New("unknown symbol")
)

// Gateway — единая точка входа на биржу. Две реализации: live и mock,
// выбор при сборке приложения, без ветвления внутри.
type Gateway interface {
	PlaceMarketOrder(ctx context.Context, creds models.Credentials, symbol string, side models.Side, qty float64, marketType models.MarketType, params models.OrderParams) (models.Order, error)
	FetchBalance(ctx context.Context, creds models.Credentials, marketType models.MarketType) (models.Balance, error)
	LoadCatalog(ctx context.Context) ([]models.Market, error)
}
