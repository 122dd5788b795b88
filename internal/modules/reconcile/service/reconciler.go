package service

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"

	"github.com/TomToms55/trade-compass-be/internal/models"
	exchange "github.com/TomToms55/trade-compass-be/internal/modules/exchange/service"
	"github.com/TomToms55/trade-compass-be/internal/notify"
	"github.com/TomToms55/trade-compass-be/pkg/logger"
)

// PositionStore — журнал позиций. Записи не удаляются, единственная
// мутация — закрытие через UpdateClosure.
type PositionStore interface {
	FindOpenBySymbolAndSide(ctx context.Context, symbol string, side models.Side) ([]models.Position, error)
	UpdateClosure(ctx context.Context, positionID string, closure models.PositionClosure) (models.Position, error)
	Add(ctx context.Context, pos models.Position) error
}

// CredentialStore отдаёт биржевые ключи владельца позиции; (nil, nil) если их нет.
type CredentialStore interface {
	FindCredentialsByOwner(ctx context.Context, ownerID string) (*models.Credentials, error)
}

// Reconciler закрывает открытые позиции противоположной стороны при развороте сигнала.
type Reconciler struct {
	store PositionStore
	creds CredentialStore
	gw    exchange.Gateway
	n     notify.Notifier

	now func() time.Time
}

func NewReconciler(store PositionStore, creds CredentialStore, gw exchange.Gateway, n notify.Notifier) *Reconciler {
	return &Reconciler{
		store: store,
		creds: creds,
		gw:    gw,
		n:     n,
		now:   time.Now,
	}
}

// OnSignal обрабатывает один направленный сигнал. Позиции закрываются
// последовательно и независимо: ошибка одной не прерывает остальные.
func (r *Reconciler) OnSignal(ctx context.Context, ev models.SignalEvent) {
	span := opentracing.StartSpan("reconcile")
	span.SetTag("symbol", ev.Symbol)
	span.SetTag("signal", string(ev.Type))
	defer span.Finish()

	signalSide := models.Side(ev.Type)
	opposite := signalSide.Invert()

	positions, err := r.store.FindOpenBySymbolAndSide(ctx, ev.Symbol, opposite)
	if err != nil {
		// fail-closed: без списка позиций проход небезопасен
		logger.Error("reconcile %s %s aborted, position query failed: %v", ev.Symbol, ev.Type, err)
		return
	}
	if len(positions) == 0 {
		logger.Info("reconcile %s %s: no opposing OPEN positions", ev.Symbol, ev.Type)
		return
	}

	var rawSignal []byte
	if ev.Signal != nil {
		if rawSignal, err = sonic.Marshal(ev.Signal); err != nil {
			logger.Warn("reconcile %s: signal audit blob not encoded: %v", ev.Symbol, err)
			rawSignal = nil
		}
	}

	logger.Info("reconcile %s %s: closing %d %s position(s)", ev.Symbol, ev.Type, len(positions), opposite)
	for _, pos := range positions {
		r.closeOne(ctx, pos, rawSignal)
	}
}

// closeOne делает ровно одну попытку закрытия. Любая ошибка терминальна
// для этой позиции: она остаётся OPEN до следующего встречного сигнала.
func (r *Reconciler) closeOne(ctx context.Context, pos models.Position, rawSignal []byte) {
	creds, err := r.creds.FindCredentialsByOwner(ctx, pos.UserID)
	if err != nil {
		logger.Error("position %s: credentials lookup for user %s failed: %v", pos.ID, pos.UserID, err)
		return
	}
	if creds == nil {
		logger.Error("position %s: user %s has no exchange credentials, skipped", pos.ID, pos.UserID)
		return
	}

	if !(pos.Filled > 0) {
		logger.Error("position %s: non-positive filled quantity %v, cannot close", pos.ID, pos.Filled)
		return
	}

	closingSide := pos.Side.Invert()
	params := models.OrderParams{}
	if pos.MarketType == models.MarketFutures {
		// закрывающий ордер не должен открыть встречную позицию
		params.ReduceOnly = true
	}

	order, err := r.gw.PlaceMarketOrder(ctx, *creds, pos.Symbol, closingSide, pos.Filled, pos.MarketType, params)
	if err != nil {
		logger.Error("position %s: closing order failed (%s %s qty=%v %s): %v",
			pos.ID, pos.Symbol, closingSide, pos.Filled, pos.MarketType, err)
		return
	}

	closedAt := order.Timestamp
	if closedAt.IsZero() {
		closedAt = r.now()
	}
	durationMs := closedAt.Sub(pos.OpenedAt).Milliseconds()

	var closeCost *float64
	if order.Cost > 0 {
		cc := order.Cost
		closeCost = &cc
	}

	profit := computeProfit(pos, order)
	if profit == nil {
		logger.Warn("position %s: profit not computed, cost unknown (open=%v close=%v)", pos.ID, pos.Cost, order.Cost)
	}

	closure := models.PositionClosure{
		OrderID:    order.ID,
		ClosedAt:   closedAt,
		Price:      order.AvgPrice,
		CloseCost:  closeCost,
		Profit:     profit,
		DurationMs: durationMs,
		RawSignal:  rawSignal,
	}
	if _, err := r.store.UpdateClosure(ctx, pos.ID, closure); err != nil {
		logger.Error("position %s: closure not persisted: %v", pos.ID, err)
		return
	}

	logger.Info("position %s closed: %s %s qty=%v order=%s duration=%dms", pos.ID, pos.Symbol, closingSide, pos.Filled, order.ID, durationMs)
	if r.n != nil {
		if profit != nil {
			r.n.Sendf("✅ %s: closed %s %s qty=%v, profit %.2f %s", pos.Symbol, pos.Side, pos.MarketType, pos.Filled, *profit, "USDC")
		} else {
			r.n.Sendf("✅ %s: closed %s %s qty=%v", pos.Symbol, pos.Side, pos.MarketType, pos.Filled)
		}
	}
}

// computeProfit: для изначального BUY — выручка закрытия минус цена входа,
// для SELL — наоборот. Комиссии в расчёт не входят. nil когда стоимость
// одной из ног неизвестна.
func computeProfit(pos models.Position, order models.Order) *float64 {
	if pos.Cost <= 0 || order.Cost <= 0 {
		return nil
	}
	var p float64
	if pos.Side == models.SideBuy {
		p = order.Cost - pos.Cost
	} else {
		p = pos.Cost - order.Cost
	}
	return &p
}
