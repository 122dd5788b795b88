package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/TomToms55/trade-compass-be/internal/models"
	"github.com/TomToms55/trade-compass-be/pkg/logger"
)

func init() {
	_ = logger.Init()
}

type fakeStore struct {
	open    []models.Position
	findErr error

	updateErr error
	closures  map[string]models.PositionClosure
}

func (f *fakeStore) FindOpenBySymbolAndSide(ctx context.Context, symbol string, side models.Side) ([]models.Position, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Position
	for _, p := range f.open {
		if p.Symbol == symbol && p.Side == side && p.State == models.PositionOpen {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateClosure(ctx context.Context, positionID string, closure models.PositionClosure) (models.Position, error) {
	if f.updateErr != nil {
		return models.Position{}, f.updateErr
	}
	if f.closures == nil {
		f.closures = make(map[string]models.PositionClosure)
	}
	f.closures[positionID] = closure
	return models.Position{ID: positionID, State: models.PositionCompleted}, nil
}

func (f *fakeStore) Add(ctx context.Context, pos models.Position) error {
	f.open = append(f.open, pos)
	return nil
}

type fakeCreds struct {
	byOwner map[string]*models.Credentials
	err     error
}

func (f *fakeCreds) FindCredentialsByOwner(ctx context.Context, ownerID string) (*models.Credentials, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byOwner[ownerID], nil
}

type placedOrder struct {
	symbol     string
	side       models.Side
	qty        float64
	marketType models.MarketType
	params     models.OrderParams
}

type fakeGateway struct {
	orders []models.Order
	errs   []error
	calls  []placedOrder
}

func (f *fakeGateway) PlaceMarketOrder(ctx context.Context, creds models.Credentials, symbol string, side models.Side, qty float64, mt models.MarketType, params models.OrderParams) (models.Order, error) {
	i := len(f.calls)
	f.calls = append(f.calls, placedOrder{symbol: symbol, side: side, qty: qty, marketType: mt, params: params})
	if i < len(f.errs) && f.errs[i] != nil {
		return models.Order{}, f.errs[i]
	}
	if i < len(f.orders) {
		return f.orders[i], nil
	}
	return models.Order{ID: fmt.Sprintf("order-%d", i+1), Timestamp: time.Now(), AvgPrice: 100, Cost: 100, Filled: qty}, nil
}

func (f *fakeGateway) FetchBalance(ctx context.Context, creds models.Credentials, mt models.MarketType) (models.Balance, error) {
	return models.Balance{}, errors.New("not implemented")
}

func (f *fakeGateway) LoadCatalog(ctx context.Context) ([]models.Market, error) {
	return nil, errors.New("not implemented")
}

func openPosition(id string, side models.Side, mt models.MarketType) models.Position {
	return models.Position{
		ID:         id,
		UserID:     "user-1",
		OrderID:    "open-" + id,
		OpenedAt:   time.Now().Add(-time.Hour),
		Symbol:     "BTCUSDC",
		MarketType: mt,
		Side:       side,
		Price:      65000,
		Amount:     1,
		Filled:     1,
		Cost:       65000,
		State:      models.PositionOpen,
	}
}

func testCreds() *fakeCreds {
	return &fakeCreds{byOwner: map[string]*models.Credentials{
		"user-1": {APIKey: "k", APISecret: "s"},
	}}
}

func buyEvent() models.SignalEvent {
	return models.SignalEvent{
		Type:   models.EventBuy,
		Asset:  "BTC",
		Symbol: "BTCUSDC",
		Signal: &models.AssetSignal{Asset: "BTC", Value: 1, Date: time.Now()},
	}
}

func TestBuySignalClosesOnlySellSide(t *testing.T) {
	store := &fakeStore{open: []models.Position{
		openPosition("pos-buy", models.SideBuy, models.MarketFutures),
		openPosition("pos-sell", models.SideSell, models.MarketFutures),
	}}
	gw := &fakeGateway{}
	r := NewReconciler(store, testCreds(), gw, nil)

	r.OnSignal(context.Background(), buyEvent())

	if len(gw.calls) != 1 {
		t.Fatalf("expected exactly one closing order, got %d", len(gw.calls))
	}
	// закрытие sell-позиции делается встречной стороной
	if gw.calls[0].side != models.SideBuy {
		t.Fatalf("closing side = %s, want buy", gw.calls[0].side)
	}
	if _, ok := store.closures["pos-sell"]; !ok {
		t.Fatal("sell-side position must be closed")
	}
	if _, ok := store.closures["pos-buy"]; ok {
		t.Fatal("buy-side position must stay OPEN")
	}
}

func TestProfitForBuyPosition(t *testing.T) {
	pos := openPosition("pos-1", models.SideBuy, models.MarketSpot)
	pos.Cost = 1000
	store := &fakeStore{open: []models.Position{pos}}
	gw := &fakeGateway{orders: []models.Order{{
		ID: "close-1", Timestamp: time.Now(), AvgPrice: 101, Cost: 1010, Filled: 1,
	}}}
	r := NewReconciler(store, testCreds(), gw, nil)

	ev := models.SignalEvent{Type: models.EventSell, Asset: "BTC", Symbol: "BTCUSDC"}
	r.OnSignal(context.Background(), ev)

	closure, ok := store.closures["pos-1"]
	if !ok {
		t.Fatal("position not closed")
	}
	if closure.Profit == nil || *closure.Profit != 10 {
		t.Fatalf("profit = %v, want +10", closure.Profit)
	}
	if closure.OrderID != "close-1" {
		t.Fatalf("closing order id = %q", closure.OrderID)
	}
}

func TestProfitForSellPosition(t *testing.T) {
	pos := openPosition("pos-1", models.SideSell, models.MarketFutures)
	pos.Cost = 3000
	store := &fakeStore{open: []models.Position{pos}}
	gw := &fakeGateway{orders: []models.Order{{
		ID: "close-1", Timestamp: time.Now(), AvgPrice: 99, Cost: 2980, Filled: 1,
	}}}
	r := NewReconciler(store, testCreds(), gw, nil)

	r.OnSignal(context.Background(), buyEvent())

	closure, ok := store.closures["pos-1"]
	if !ok {
		t.Fatal("position not closed")
	}
	if closure.Profit == nil || *closure.Profit != 20 {
		t.Fatalf("profit = %v, want +20", closure.Profit)
	}
}

func TestUnknownCostLeavesProfitNil(t *testing.T) {
	store := &fakeStore{open: []models.Position{openPosition("pos-1", models.SideSell, models.MarketFutures)}}
	gw := &fakeGateway{orders: []models.Order{{
		ID: "close-1", Timestamp: time.Now(), AvgPrice: 99, Cost: 0, Filled: 1, // venue omitted cost
	}}}
	r := NewReconciler(store, testCreds(), gw, nil)

	r.OnSignal(context.Background(), buyEvent())

	closure, ok := store.closures["pos-1"]
	if !ok {
		t.Fatal("closure must still proceed without profit")
	}
	if closure.Profit != nil {
		t.Fatalf("profit = %v, want nil", *closure.Profit)
	}
	if closure.CloseCost != nil {
		t.Fatalf("close cost = %v, want nil", *closure.CloseCost)
	}
}

func TestNoOpposingPositions(t *testing.T) {
	store := &fakeStore{}
	gw := &fakeGateway{}
	r := NewReconciler(store, testCreds(), gw, nil)

	r.OnSignal(context.Background(), buyEvent())

	if len(gw.calls) != 0 {
		t.Fatalf("expected zero exchange calls, got %d", len(gw.calls))
	}
	if len(store.closures) != 0 {
		t.Fatalf("expected zero store updates, got %d", len(store.closures))
	}
}

func TestExchangeErrorKeepsPositionOpen(t *testing.T) {
	store := &fakeStore{open: []models.Position{
		openPosition("pos-1", models.SideSell, models.MarketFutures),
		openPosition("pos-2", models.SideSell, models.MarketFutures),
	}}
	gw := &fakeGateway{errs: []error{errors.New("insufficient funds")}}
	r := NewReconciler(store, testCreds(), gw, nil)

	r.OnSignal(context.Background(), buyEvent())

	if len(gw.calls) != 2 {
		t.Fatalf("sibling position must still be attempted, got %d calls", len(gw.calls))
	}
	if _, ok := store.closures["pos-1"]; ok {
		t.Fatal("failed closing must not be persisted")
	}
	if _, ok := store.closures["pos-2"]; !ok {
		t.Fatal("second position must be closed despite first failure")
	}
}

func TestStoreQueryFailureAbortsPass(t *testing.T) {
	store := &fakeStore{findErr: errors.New("db down")}
	gw := &fakeGateway{}
	r := NewReconciler(store, testCreds(), gw, nil)

	r.OnSignal(context.Background(), buyEvent())

	if len(gw.calls) != 0 {
		t.Fatalf("aborted pass must not touch the exchange, got %d calls", len(gw.calls))
	}
}

func TestMissingCredentialsSkipsPosition(t *testing.T) {
	other := openPosition("pos-2", models.SideSell, models.MarketFutures)
	other.UserID = "user-2" // нет ключей
	store := &fakeStore{open: []models.Position{
		other,
		openPosition("pos-1", models.SideSell, models.MarketFutures),
	}}
	gw := &fakeGateway{}
	r := NewReconciler(store, testCreds(), gw, nil)

	r.OnSignal(context.Background(), buyEvent())

	if len(gw.calls) != 1 {
		t.Fatalf("expected one closing order, got %d", len(gw.calls))
	}
	if _, ok := store.closures["pos-1"]; !ok {
		t.Fatal("position with credentials must be closed")
	}
	if _, ok := store.closures["pos-2"]; ok {
		t.Fatal("position without credentials must be skipped")
	}
}

func TestNonPositiveFilledSkipsPosition(t *testing.T) {
	bad := openPosition("pos-1", models.SideSell, models.MarketFutures)
	bad.Filled = 0
	store := &fakeStore{open: []models.Position{bad}}
	gw := &fakeGateway{}
	r := NewReconciler(store, testCreds(), gw, nil)

	r.OnSignal(context.Background(), buyEvent())

	if len(gw.calls) != 0 {
		t.Fatalf("unfillable position must not reach the exchange, got %d calls", len(gw.calls))
	}
}

func TestReduceOnlyFlag(t *testing.T) {
	store := &fakeStore{open: []models.Position{
		openPosition("pos-fut", models.SideSell, models.MarketFutures),
	}}
	gw := &fakeGateway{}
	r := NewReconciler(store, testCreds(), gw, nil)
	r.OnSignal(context.Background(), buyEvent())
	if !gw.calls[0].params.ReduceOnly {
		t.Fatal("futures closing order must be reduce-only")
	}

	spotStore := &fakeStore{open: []models.Position{
		openPosition("pos-spot", models.SideSell, models.MarketSpot),
	}}
	spotGw := &fakeGateway{}
	NewReconciler(spotStore, testCreds(), spotGw, nil).OnSignal(context.Background(), buyEvent())
	if spotGw.calls[0].params.ReduceOnly {
		t.Fatal("spot closing order must not carry reduce-only")
	}
}

func TestCloseTimestampFallsBackToClock(t *testing.T) {
	pos := openPosition("pos-1", models.SideSell, models.MarketFutures)
	store := &fakeStore{open: []models.Position{pos}}
	gw := &fakeGateway{orders: []models.Order{{
		ID: "close-1", AvgPrice: 100, Cost: 100, Filled: 1, // zero timestamp
	}}}
	r := NewReconciler(store, testCreds(), gw, nil)
	wall := pos.OpenedAt.Add(90 * time.Minute)
	r.now = func() time.Time { return wall }

	r.OnSignal(context.Background(), buyEvent())

	closure, ok := store.closures["pos-1"]
	if !ok {
		t.Fatal("position not closed")
	}
	if !closure.ClosedAt.Equal(wall) {
		t.Fatalf("close timestamp = %v, want wall clock %v", closure.ClosedAt, wall)
	}
	if closure.DurationMs != (90 * time.Minute).Milliseconds() {
		t.Fatalf("duration = %dms", closure.DurationMs)
	}
}

func TestClosingQuantityIsFilledQuantity(t *testing.T) {
	pos := openPosition("pos-1", models.SideSell, models.MarketFutures)
	pos.Amount = 2
	pos.Filled = 1.5 // partial fill: закрываем только исполненное
	store := &fakeStore{open: []models.Position{pos}}
	gw := &fakeGateway{}
	r := NewReconciler(store, testCreds(), gw, nil)

	r.OnSignal(context.Background(), buyEvent())

	if gw.calls[0].qty != 1.5 {
		t.Fatalf("closing qty = %v, want 1.5", gw.calls[0].qty)
	}
}
