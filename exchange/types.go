package exchange

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Symbols
type Pair string

const (
	PAIR_BNBETH  Pair = "BNB_ETH"
	PAIR_BTCUSDT Pair = "BTC_USDT"
	PAIR_ETHUSDT Pair = "ETH_USDT"
)

func (p Pair) Base() string {
	base, _, _ := strings.Cut(string(p), "_")
	return base
}

func (p Pair) Quote() string {
	_, quote, _ := strings.Cut(string(p), "_")
	return quote
}

// Trade sides
type OrderSide string

const (
	SIDE_BUY  OrderSide = "BUY"
	SIDE_SELL OrderSide = "SELL"
)

type OrderType string

const (
	TYPE_LIMIT  OrderType = "LIMIT"
	TYPE_MARKET OrderType = "MARKET"
)

// OrderCandidate is an order before budget adjustment. The adjusted copy
// going to the venue may carry a smaller amount than the original.
type OrderCandidate struct {
	Pair    Pair
	IsMaker bool
	Type    OrderType
	Side    OrderSide
	Amount  decimal.Decimal
	Price   decimal.Decimal
}

type Order struct {
	Id     string
	Pair   Pair
	Type   OrderType
	Side   OrderSide
	Amount decimal.Decimal
	Price  decimal.Decimal
}

type EventKind string

const (
	EVENT_CREATED  EventKind = "CREATED"
	EVENT_CANCELED EventKind = "CANCELED"
	EVENT_FILLED   EventKind = "FILLED"
)

// OrderEvent is a venue acknowledgment for one order. Arrival order drives
// the lifecycle rows; there is no transition validation.
type OrderEvent struct {
	Kind    EventKind
	OrderId string
	Pair    Pair
}
