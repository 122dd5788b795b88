package models

// Market — метаданные торговой пары с точностью и лимитами биржи.
type Market struct {
	Symbol string
	Base   string
	Quote  string
	Type   MarketType
	Active bool

	AmountPrecision float64 // step of the order size
	PricePrecision  float64 // tick size

	MinAmount float64
	MaxAmount float64
	MinCost   float64
	MaxCost   float64
}
