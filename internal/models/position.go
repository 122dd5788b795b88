package models

import "time"

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Invert returns the opposing trade direction.
func (s Side) Invert() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

type MarketType string

const (
	MarketSpot    MarketType = "spot"
	MarketFutures MarketType = "futures"
)

type PositionState string

const (
	PositionOpen      PositionState = "OPEN"
	PositionCompleted PositionState = "COMPLETED"
)

// Position — запись в журнале сделок: исполненный ордер и его последующее закрытие.
// Append-only: единственный переход состояния OPEN -> COMPLETED.
type Position struct {
	ID       string
	UserID   string
	OrderID  string
	OpenedAt time.Time

	Symbol     string
	MarketType MarketType
	Side       Side

	Price  float64
	Amount float64
	Filled float64
	Cost   float64 // quote value of the opening fill; 0 => unknown

	State PositionState

	CloseOrderID string
	ClosedAt     *time.Time
	ClosePrice   *float64
	CloseCost    *float64
	Profit       *float64 // nil while open or when either leg's cost is unknown
	DurationMs   *int64
}

// PositionClosure carries the fields persisted on a successful close.
type PositionClosure struct {
	OrderID    string
	ClosedAt   time.Time
	Price      float64
	CloseCost  *float64
	Profit     *float64
	DurationMs int64
	RawSignal  []byte // audit blob of the triggering signal, may be nil
}
