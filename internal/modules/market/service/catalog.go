package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/TomToms55/trade-compass-be/internal/models"
	exchange "github.com/TomToms55/trade-compass-be/internal/modules/exchange/service"
	"github.com/TomToms55/trade-compass-be/pkg/logger"
)

const quoteCurrency = "USDC"

// Catalog — справочник торгуемых инструментов: активные spot и linear-perp
// пары с котировкой в USDC. Обновляется целиком, читатели видят согласованный снапшот.
type Catalog struct {
	gw exchange.Gateway

	mu        sync.RWMutex
	spot      map[string]models.Market // symbol -> meta
	futures   map[string]models.Market
	spotBase  map[string]models.Market // base asset -> meta
	futBase   map[string]models.Market
	refreshed bool
}

func NewCatalog(gw exchange.Gateway) *Catalog {
	return &Catalog{
		gw:       gw,
		spot:     make(map[string]models.Market),
		futures:  make(map[string]models.Market),
		spotBase: make(map[string]models.Market),
		futBase:  make(map[string]models.Market),
	}
}

// Refresh пересобирает обе карты из биржевых метаданных.
func (c *Catalog) Refresh(ctx context.Context) error {
	markets, err := c.gw.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("Catalog.Refresh: %w", err)
	}

	spot := make(map[string]models.Market)
	futures := make(map[string]models.Market)
	spotBase := make(map[string]models.Market)
	futBase := make(map[string]models.Market)

	for _, m := range markets {
		if !m.Active || m.Quote != quoteCurrency {
			continue
		}
		switch m.Type {
		case models.MarketSpot:
			spot[m.Symbol] = m
			spotBase[m.Base] = m
		case models.MarketFutures:
			futures[m.Symbol] = m
			futBase[m.Base] = m
		}
	}

	c.mu.Lock()
	c.spot = spot
	c.futures = futures
	c.spotBase = spotBase
	c.futBase = futBase
	c.refreshed = true
	c.mu.Unlock()

	logger.Info("catalog refreshed: %d spot, %d futures %s pairs", len(spot), len(futures), quoteCurrency)
	return nil
}

func (c *Catalog) SpotMarket(symbol string) (models.Market, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.spot[symbol]
	return m, ok
}

func (c *Catalog) FuturesMarket(symbol string) (models.Market, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.futures[symbol]
	return m, ok
}

// SpotForAsset ищет spot-пару по базовому активу (BTC -> BTCUSDC).
func (c *Catalog) SpotForAsset(asset string) (models.Market, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.spotBase[asset]
	return m, ok
}

func (c *Catalog) FuturesForAsset(asset string) (models.Market, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.futBase[asset]
	return m, ok
}

// HasSpot/HasFutures — проверки перед постановкой ордера.
func (c *Catalog) HasSpot(symbol string) bool {
	_, ok := c.SpotMarket(symbol)
	return ok
}

func (c *Catalog) HasFutures(symbol string) bool {
	_, ok := c.FuturesMarket(symbol)
	return ok
}

func (c *Catalog) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshed
}

func (c *Catalog) Size() (spot, futures int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.spot), len(c.futures)
}
