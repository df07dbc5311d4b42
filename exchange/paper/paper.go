package paper

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lagmeter/exchange"
)

type Config struct {
	Name     string
	Balances map[string]decimal.Decimal
	// Prices seeds a mid quote per pair, used until a live quote arrives.
	Prices    map[exchange.Pair]decimal.Decimal
	MinAmount decimal.Decimal
}

type quote struct {
	bid decimal.Decimal
	ask decimal.Decimal
}

// Connector is an in-process venue: uuid order ids, immediate
// acknowledgments on the event stream, balances moved on fills. Limit
// orders rest until cancelled; market orders fill at the current quote.
type Connector struct {
	config *Config

	mu       sync.Mutex
	quotes   map[exchange.Pair]quote
	balances map[string]decimal.Decimal
	orders   map[string]exchange.Order
	events   chan exchange.OrderEvent
}

func NewConnector(config *Config) *Connector {
	balances := make(map[string]decimal.Decimal, len(config.Balances))
	for asset, amount := range config.Balances {
		balances[asset] = amount
	}
	quotes := make(map[exchange.Pair]quote, len(config.Prices))
	for pair, mid := range config.Prices {
		quotes[pair] = quote{bid: mid, ask: mid}
	}
	return &Connector{
		config:   config,
		quotes:   quotes,
		balances: balances,
		orders:   make(map[string]exchange.Order),
		events:   make(chan exchange.OrderEvent, 1024),
	}
}

func (c *Connector) Name() string {
	return c.config.Name
}

// SetQuote feeds a live bid/ask, typically from a ticker stream.
func (c *Connector) SetQuote(pair exchange.Pair, bid, ask decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quotes[pair] = quote{bid: bid, ask: ask}
}

func (c *Connector) Price(pair exchange.Pair, isSell bool) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	q, ok := c.quotes[pair]
	if !ok {
		return decimal.Zero, fmt.Errorf("no quote for pair %s", pair)
	}
	if isSell {
		return q.ask, nil
	}
	return q.bid, nil
}

func (c *Connector) Balance(asset string) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balances[asset], nil
}

func (c *Connector) Buy(candidate *exchange.OrderCandidate) (string, error) {
	return c.place(candidate, exchange.SIDE_BUY)
}

func (c *Connector) Sell(candidate *exchange.OrderCandidate) (string, error) {
	return c.place(candidate, exchange.SIDE_SELL)
}

func (c *Connector) place(candidate *exchange.OrderCandidate, side exchange.OrderSide) (string, error) {
	if candidate.Amount.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("non-positive order amount %s", candidate.Amount)
	}
	order := exchange.Order{
		Id:     uuid.NewString(),
		Pair:   candidate.Pair,
		Type:   candidate.Type,
		Side:   side,
		Amount: candidate.Amount,
		Price:  candidate.Price,
	}

	c.mu.Lock()
	if order.Type == exchange.TYPE_LIMIT {
		c.orders[order.Id] = order
	} else {
		c.settle(&order)
	}
	c.mu.Unlock()

	c.events <- exchange.OrderEvent{Kind: exchange.EVENT_CREATED, OrderId: order.Id, Pair: order.Pair}
	if order.Type == exchange.TYPE_MARKET {
		c.events <- exchange.OrderEvent{Kind: exchange.EVENT_FILLED, OrderId: order.Id, Pair: order.Pair}
	}
	return order.Id, nil
}

// settle moves balances for a filled order. Caller holds the lock.
func (c *Connector) settle(order *exchange.Order) {
	baseAsset, quoteAsset := order.Pair.Base(), order.Pair.Quote()
	value := order.Amount.Mul(order.Price)
	if order.Side == exchange.SIDE_SELL {
		c.balances[baseAsset] = c.balances[baseAsset].Sub(order.Amount)
		c.balances[quoteAsset] = c.balances[quoteAsset].Add(value)
	} else {
		c.balances[baseAsset] = c.balances[baseAsset].Add(order.Amount)
		c.balances[quoteAsset] = c.balances[quoteAsset].Sub(value)
	}
	slog.Debug("[PaperConnector] Order settled", "order", order.Id, "side", order.Side, "amount", order.Amount.String(), "price", order.Price.String())
}

func (c *Connector) Cancel(pair exchange.Pair, orderId string) error {
	c.mu.Lock()
	_, ok := c.orders[orderId]
	if ok {
		delete(c.orders, orderId)
	}
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("order %s not found", orderId)
	}
	c.events <- exchange.OrderEvent{Kind: exchange.EVENT_CANCELED, OrderId: orderId, Pair: pair}
	return nil
}

func (c *Connector) ActiveOrders() []exchange.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	orders := make([]exchange.Order, 0, len(c.orders))
	for _, order := range c.orders {
		orders = append(orders, order)
	}
	return orders
}

func (c *Connector) Events() <-chan exchange.OrderEvent {
	return c.events
}

func (c *Connector) BudgetChecker() exchange.BudgetChecker {
	return &budgetChecker{connector: c}
}

type budgetChecker struct {
	connector *Connector
}

// AdjustCandidate shrinks the amount to what the account can fund. With
// allOrNone set, a candidate that cannot be fully funded adjusts to zero.
// Amounts below the venue minimum also adjust to zero.
func (b *budgetChecker) AdjustCandidate(candidate *exchange.OrderCandidate, allOrNone bool) *exchange.OrderCandidate {
	adjusted := *candidate

	var available decimal.Decimal
	if candidate.Side == exchange.SIDE_SELL {
		available, _ = b.connector.Balance(candidate.Pair.Base())
	} else {
		quoteAvailable, _ := b.connector.Balance(candidate.Pair.Quote())
		if candidate.Price.LessThanOrEqual(decimal.Zero) {
			adjusted.Amount = decimal.Zero
			return &adjusted
		}
		available = quoteAvailable.Div(candidate.Price)
	}

	if available.LessThan(candidate.Amount) {
		if allOrNone {
			adjusted.Amount = decimal.Zero
			return &adjusted
		}
		adjusted.Amount = available
	}
	if adjusted.Amount.LessThan(b.connector.config.MinAmount) {
		adjusted.Amount = decimal.Zero
	}
	return &adjusted
}
