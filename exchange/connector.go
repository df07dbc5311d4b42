package exchange

import "github.com/shopspring/decimal"

// Connector is the venue-facing surface the latency strategy drives. The
// implementation owns connectivity, authentication and order routing; the
// strategy only places, cancels and listens.
type Connector interface {
	Name() string
	// Price returns the ask when isSell is true, the bid otherwise.
	Price(pair Pair, isSell bool) (decimal.Decimal, error)
	Balance(asset string) (decimal.Decimal, error)
	// Buy and Sell return the venue order id.
	Buy(candidate *OrderCandidate) (string, error)
	Sell(candidate *OrderCandidate) (string, error)
	Cancel(pair Pair, orderId string) error
	ActiveOrders() []Order
	Events() <-chan OrderEvent
	BudgetChecker() BudgetChecker
}

// BudgetChecker shrinks an order candidate to what the account can fund.
// A zero adjusted amount means the order should be skipped, not treated as
// an error.
type BudgetChecker interface {
	AdjustCandidate(candidate *OrderCandidate, allOrNone bool) *OrderCandidate
}
