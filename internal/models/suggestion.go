package models

import "time"

type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Grades — три независимые оценки актива в диапазоне 0..100.
type Grades struct {
	A float64 `json:"gradeA"`
	B float64 `json:"gradeB"`
	C float64 `json:"gradeC"`
}

func (g Grades) Avg() float64 { return (g.A + g.B + g.C) / 3 }

type AssetGrades struct {
	Asset  string    `json:"asset"`
	Grades Grades    `json:"grades"`
	Date   time.Time `json:"date"`
}

// Suggestion is a computed, non-persisted recommendation for one asset.
// Spot/Futures are nil when no eligible market of that type exists.
type Suggestion struct {
	Asset      string
	Spot       *Market
	Futures    *Market
	Action     Action
	Confidence float64
	Grades     Grades
	Date       time.Time
}
