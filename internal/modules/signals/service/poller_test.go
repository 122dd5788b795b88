package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TomToms55/trade-compass-be/internal/models"
	market "github.com/TomToms55/trade-compass-be/internal/modules/market/service"
	"github.com/TomToms55/trade-compass-be/pkg/logger"
)

func init() {
	_ = logger.Init()
}

type scriptedFeed struct {
	rounds [][]models.AssetSignal
	errs   []error
	call   int
}

func (s *scriptedFeed) GetSignals(ctx context.Context) ([]models.AssetSignal, error) {
	i := s.call
	s.call++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i >= len(s.rounds) {
		return nil, nil
	}
	return s.rounds[i], nil
}

func sig(asset string, v int) models.AssetSignal {
	return models.AssetSignal{Asset: asset, Value: v, Date: time.Now()}
}

func newTestPoller(feed TradingSignalSource, out chan models.SignalEvent) *Poller {
	return NewPoller(feed, market.NewCatalog(nil), out, nil, time.Hour)
}

func drain(out chan models.SignalEvent) []models.SignalEvent {
	var evs []models.SignalEvent
	for {
		select {
		case ev := <-out:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

func TestTransitionMatrix(t *testing.T) {
	cases := []struct {
		prev, next int
		want       models.EventType
		fires      bool
	}{
		{0, 1, models.EventBuy, true},
		{-1, 1, models.EventBuy, true},
		{0, -1, models.EventSell, true},
		{1, -1, models.EventSell, true},
		{1, 1, "", false},
		{-1, -1, "", false},
		{0, 0, "", false},
		{1, 0, "", false},
		{-1, 0, "", false},
	}
	for _, tc := range cases {
		got, fired := transition(tc.prev, tc.next)
		if fired != tc.fires || got != tc.want {
			t.Errorf("transition(%d,%d) = (%q,%v), want (%q,%v)", tc.prev, tc.next, got, fired, tc.want, tc.fires)
		}
	}
}

func TestPollEmitsOnEdgesOnly(t *testing.T) {
	feed := &scriptedFeed{rounds: [][]models.AssetSignal{
		{sig("BTC", 1), sig("ETH", 0)},  // BTC: missing->1 => buy; ETH: missing->0 => nothing
		{sig("BTC", 1), sig("ETH", -1)}, // BTC steady; ETH: 0->-1 => sell
		{sig("BTC", -1), sig("ETH", 0)}, // BTC: 1->-1 => sell; ETH: -1->0 => nothing
	}}
	out := make(chan models.SignalEvent, 16)
	p := newTestPoller(feed, out)
	ctx := context.Background()

	p.poll(ctx)
	evs := drain(out)
	if len(evs) != 1 || evs[0].Type != models.EventBuy || evs[0].Asset != "BTC" {
		t.Fatalf("round 1: %+v", evs)
	}
	if evs[0].Symbol != "BTCUSDC" {
		t.Fatalf("round 1 symbol: %q", evs[0].Symbol)
	}
	if evs[0].Signal == nil || evs[0].Signal.Value != 1 {
		t.Fatalf("round 1 must carry the raw signal: %+v", evs[0].Signal)
	}

	p.poll(ctx)
	evs = drain(out)
	if len(evs) != 1 || evs[0].Type != models.EventSell || evs[0].Asset != "ETH" {
		t.Fatalf("round 2: %+v", evs)
	}

	p.poll(ctx)
	evs = drain(out)
	if len(evs) != 1 || evs[0].Type != models.EventSell || evs[0].Asset != "BTC" {
		t.Fatalf("round 3: %+v", evs)
	}
}

func TestPollUpdatesMapWithoutEvent(t *testing.T) {
	feed := &scriptedFeed{rounds: [][]models.AssetSignal{
		{sig("BTC", -1)}, // missing->-1 => sell
		{sig("BTC", 0)},  // -1->0 => no event, map must still move to 0
		{sig("BTC", -1)}, // 0->-1 => sell again
	}}
	out := make(chan models.SignalEvent, 16)
	p := newTestPoller(feed, out)
	ctx := context.Background()

	p.poll(ctx)
	p.poll(ctx)
	p.poll(ctx)

	evs := drain(out)
	if len(evs) != 2 {
		t.Fatalf("expected 2 sell events, got %+v", evs)
	}
	for _, ev := range evs {
		if ev.Type != models.EventSell {
			t.Fatalf("unexpected event %+v", ev)
		}
	}
}

func TestPollErrorEmitsErrorEvent(t *testing.T) {
	boom := errors.New("feed down")
	feed := &scriptedFeed{
		errs:   []error{boom},
		rounds: [][]models.AssetSignal{nil, {sig("BTC", 1)}},
	}
	out := make(chan models.SignalEvent, 16)
	p := newTestPoller(feed, out)
	ctx := context.Background()

	p.poll(ctx)
	evs := drain(out)
	if len(evs) != 1 || evs[0].Type != models.EventError || !errors.Is(evs[0].Err, boom) {
		t.Fatalf("expected error event, got %+v", evs)
	}

	// следующий цикл должен пройти как обычно
	p.poll(ctx)
	evs = drain(out)
	if len(evs) != 1 || evs[0].Type != models.EventBuy {
		t.Fatalf("poller must recover after a feed error, got %+v", evs)
	}
}

func TestStartTwiceKeepsOneSchedule(t *testing.T) {
	feed := &scriptedFeed{rounds: [][]models.AssetSignal{{sig("BTC", 1)}}}
	out := make(chan models.SignalEvent, 16)
	p := newTestPoller(feed, out)
	ctx := context.Background()

	p.Start(ctx)
	p.Start(ctx) // warned no-op
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(drain(out)) > 0 {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	if !p.Running() {
		t.Fatal("poller must be running")
	}
	if feed.call != 1 {
		t.Fatalf("expected exactly one immediate cycle, got %d", feed.call)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	feed := &scriptedFeed{}
	out := make(chan models.SignalEvent, 16)
	p := newTestPoller(feed, out)

	p.Start(context.Background())
	p.Stop()
	p.Stop()
	if p.Running() {
		t.Fatal("poller must be stopped")
	}
}
