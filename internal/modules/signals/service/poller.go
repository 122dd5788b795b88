package service

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"

	"github.com/TomToms55/trade-compass-be/internal/models"
	health "github.com/TomToms55/trade-compass-be/internal/modules/health/service"
	market "github.com/TomToms55/trade-compass-be/internal/modules/market/service"
	"github.com/TomToms55/trade-compass-be/pkg/logger"
	"github.com/TomToms55/trade-compass-be/pkg/schedule"
)

// Poller опрашивает сигнальный фид и выдаёт события только на переходах
// (edge-trigger): устойчивое состояние событий не порождает.
type Poller struct {
	src     TradingSignalSource
	catalog *market.Catalog
	out     chan<- models.SignalEvent
	state   *health.State

	task *schedule.Task

	// last мутируется только внутри цикла опроса; наложение циклов
	// исключено guard'ом задачи.
	last map[string]int
}

func NewPoller(src TradingSignalSource, catalog *market.Catalog, out chan<- models.SignalEvent, state *health.State, interval time.Duration) *Poller {
	p := &Poller{
		src:     src,
		catalog: catalog,
		out:     out,
		state:   state,
		last:    make(map[string]int),
	}
	p.task = schedule.NewTask("signal-poll", interval, p.poll)
	return p
}

// Start: один немедленный цикл, затем по расписанию. Повторный вызов — no-op.
func (p *Poller) Start(ctx context.Context) { p.task.Start(ctx) }

// Stop отменяет будущие тики; текущий цикл дорабатывает до конца.
func (p *Poller) Stop() { p.task.Stop() }

func (p *Poller) Running() bool { return p.task.Running() }

func (p *Poller) poll(ctx context.Context) {
	span := opentracing.StartSpan("signal-poll")
	defer span.Finish()

	signals, err := p.src.GetSignals(ctx)
	if err != nil {
		logger.Error("signal fetch failed: %v", err)
		p.emit(ctx, models.SignalEvent{Type: models.EventError, Err: err})
		return
	}

	if p.state != nil {
		p.state.TouchTick(time.Now())
	}

	for i := range signals {
		sig := signals[i]
		prev := p.last[sig.Asset] // missing => neutral

		if evType, ok := transition(prev, sig.Value); ok {
			logger.Info("signal flip %s: %d -> %d (%s)", sig.Asset, prev, sig.Value, evType)
			p.emit(ctx, models.SignalEvent{
				Type:   evType,
				Asset:  sig.Asset,
				Symbol: p.resolveSymbol(sig.Asset),
				Signal: &sig,
			})
		}

		// карта обновляется всегда, было событие или нет
		p.last[sig.Asset] = sig.Value
	}
}

// transition применяет правило edge-trigger:
// buy при prev∈{-1,0} и new=1, sell при prev∈{1,0} и new=-1.
func transition(prev, next int) (models.EventType, bool) {
	switch {
	case next == models.SignalBuy && prev != models.SignalBuy:
		return models.EventBuy, true
	case next == models.SignalSell && prev != models.SignalSell:
		return models.EventSell, true
	}
	return "", false
}

func (p *Poller) resolveSymbol(asset string) string {
	if m, ok := p.catalog.FuturesForAsset(asset); ok {
		return m.Symbol
	}
	if m, ok := p.catalog.SpotForAsset(asset); ok {
		return m.Symbol
	}
	return asset + "USDC"
}

func (p *Poller) emit(ctx context.Context, ev models.SignalEvent) {
	select {
	case p.out <- ev:
	case <-ctx.Done():
	}
}
