package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/TomToms55/trade-compass-be/internal/models"
)

// MockGateway — тестовый двойник биржи: детерминированные исполнения по
// последней цене из PriceCache, без сети.
type MockGateway struct {
	prices *PriceCache

	mu       sync.Mutex
	orderSeq int
	free     map[string]float64
}

func NewMockGateway(prices *PriceCache) *MockGateway {
	seed := map[string]float64{
		"BTCUSDC": 65000,
		"ETHUSDC": 3200,
		"SOLUSDC": 150,
		"ADAUSDC": 0.45,
	}
	for s, px := range seed {
		if _, ok := prices.LastPrice(s); !ok {
			prices.SetPrice(s, px)
		}
	}
	return &MockGateway{
		prices: prices,
		free: map[string]float64{
			"USDC": 100000,
			"BTC":  2,
			"ETH":  50,
			"SOL":  1000,
		},
	}
}

func (m *MockGateway) PlaceMarketOrder(
	ctx context.Context,
	creds models.Credentials,
	symbol string,
	side models.Side,
	qty float64,
	marketType models.MarketType,
	params models.OrderParams,
) (models.Order, error) {
	if qty <= 0 {
		return models.Order{}, ErrInvalidOrder
	}
	px, ok := m.prices.LastPrice(symbol)
	if !ok {
		return models.Order{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	cost := qty * px

	m.mu.Lock()
	defer m.mu.Unlock()

	if marketType == models.MarketSpot && side == models.SideBuy && m.free["USDC"] < cost {
		return models.Order{}, ErrInsufficientFunds
	}
	if marketType == models.MarketSpot {
		if side == models.SideBuy {
			m.free["USDC"] -= cost
		} else {
			m.free["USDC"] += cost
		}
	}

	m.orderSeq++
	return models.Order{
		ID:        fmt.Sprintf("mock-%d", m.orderSeq),
		Timestamp: time.Now(),
		AvgPrice:  px,
		Cost:      cost,
		Filled:    qty,
	}, nil
}

func (m *MockGateway) FetchBalance(ctx context.Context, creds models.Credentials, marketType models.MarketType) (models.Balance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bal := models.Balance{
		Total: make(map[string]float64, len(m.free)),
		Free:  make(map[string]float64, len(m.free)),
	}
	for coin, v := range m.free {
		bal.Total[coin] = v
		bal.Free[coin] = v
	}
	return bal, nil
}

func (m *MockGateway) LoadCatalog(ctx context.Context) ([]models.Market, error) {
	mk := func(symbol, base string, mt models.MarketType) models.Market {
		return models.Market{
			Symbol:          symbol,
			Base:            base,
			Quote:           "USDC",
			Type:            mt,
			Active:          true,
			AmountPrecision: 0.0001,
			PricePrecision:  0.01,
			MinAmount:       0.0001,
			MaxAmount:       10000,
			MinCost:         1,
			MaxCost:         2000000,
		}
	}
	return []models.Market{
		mk("BTCUSDC", "BTC", models.MarketSpot),
		mk("BTCUSDC", "BTC", models.MarketFutures),
		mk("ETHUSDC", "ETH", models.MarketSpot),
		mk("ETHUSDC", "ETH", models.MarketFutures),
		mk("SOLUSDC", "SOL", models.MarketSpot),
		mk("SOLUSDC", "SOL", models.MarketFutures),
		mk("ADAUSDC", "ADA", models.MarketSpot), // spot only: SELL-саджесты должны отсекаться
	}, nil
}
