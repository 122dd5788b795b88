package models

import "time"

// Credentials — ключи доступа пользователя к бирже.
type Credentials struct {
	APIKey    string
	APISecret string
}

// Order is the exchange's report of an executed market order.
// Timestamp may be zero and Cost may be 0 when the venue omits them.
type Order struct {
	ID        string
	Timestamp time.Time
	AvgPrice  float64
	Cost      float64
	Filled    float64
}

// OrderParams — дополнительные параметры ордера (например reduceOnly).
type OrderParams struct {
	ReduceOnly bool `json:"reduceOnly,omitempty"`
}

type Balance struct {
	Total map[string]float64
	Free  map[string]float64
}
