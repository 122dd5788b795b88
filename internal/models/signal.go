package models

import "time"

// Signal values as reported by the scoring feed.
const (
	SignalSell    = -1
	SignalNeutral = 0
	SignalBuy     = 1
)

// AssetSignal — текущее значение сигнала по активу из внешнего фида.
type AssetSignal struct {
	Asset string    `json:"asset"`
	Value int       `json:"signal"`
	Date  time.Time `json:"date"`
}

type EventType string

const (
	EventBuy   EventType = "buy"
	EventSell  EventType = "sell"
	EventError EventType = "error"
)

// SignalEvent is an edge-triggered transition emitted by the poller.
// For EventError only Err is set.
type SignalEvent struct {
	Type   EventType
	Asset  string
	Symbol string
	Signal *AssetSignal
	Err    error
}
