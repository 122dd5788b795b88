package service

import "sync"

// PriceCache — последняя известная цена по символу. Пишется стримом тикеров,
// читается мок-гейтвеем и балансовой оценкой.
type PriceCache struct {
	mu     sync.RWMutex
	prices map[string]float64
}

func NewPriceCache() *PriceCache {
	return &PriceCache{prices: make(map[string]float64)}
}

func (p *PriceCache) SetPrice(symbol string, px float64) {
	if px <= 0 {
		return
	}
	p.mu.Lock()
	p.prices[symbol] = px
	p.mu.Unlock()
}

func (p *PriceCache) LastPrice(symbol string) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	px, ok := p.prices[symbol]
	return px, ok
}
