package main

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"lagmeter/eventlog"
	"lagmeter/exchange"
	"lagmeter/msync"
)

var hundred = decimal.NewFromInt(100)

type LatencyStrategyOptions struct {
	Pair        exchange.Pair
	OrderAmount decimal.Decimal
	// OrderSpreadPercent is the distance of limit orders from the current
	// price, in percent.
	OrderSpreadPercent decimal.Decimal
	TestCreateLatency  bool
	TestExecuteLatency bool
	CreateInterval     time.Duration
	ExecuteInterval    time.Duration
	// Delay holds off the next action after any placement or cancel so
	// requests are never sent back to back.
	Delay time.Duration
}

// session is the runtime bookkeeping that drives interval decisions.
type session struct {
	createTimestamp  time.Time
	executeTimestamp time.Time
	delayTimestamp   time.Time
	// orderFilled spans the whole session, not one order id: while set, fill
	// events are not logged. With two orders in flight the second order's
	// first fill would be dropped; the strategy never has two taker orders
	// in flight (the delay window serializes placements), so this matches
	// observed behavior. Reset before every taker placement.
	orderFilled *msync.Mu[bool]
}

// LatencyStrategy places maker and taker orders on fixed intervals and
// appends a lifecycle row per order state transition, before transmission
// and on every venue acknowledgment.
type LatencyStrategy struct {
	options   *LatencyStrategyOptions
	connector exchange.Connector
	log       *eventlog.Log
	session   session
	// placed keeps the transmission instant per order id until the venue
	// acknowledges it.
	placed *msync.MuMap[string, time.Time]
}

func NewLatencyStrategy(connector exchange.Connector, log *eventlog.Log, options *LatencyStrategyOptions) *LatencyStrategy {
	return &LatencyStrategy{
		options:   options,
		connector: connector,
		log:       log,
		session: session{
			orderFilled: msync.NewMu(false),
		},
		placed: msync.NewMuMap[string, time.Time](),
	}
}

// Run consumes ticks and connector events on one loop until either channel
// closes.
func (s *LatencyStrategy) Run(ticks <-chan time.Time) {
	events := s.connector.Events()
	for {
		select {
		case now, ok := <-ticks:
			if !ok {
				return
			}
			s.OnTick(now)
		case event, ok := <-events:
			if !ok {
				return
			}
			s.dispatch(&event)
		}
	}
}

func (s *LatencyStrategy) dispatch(event *exchange.OrderEvent) {
	var err error
	switch event.Kind {
	case exchange.EVENT_CREATED:
		err = s.OnOrderCreated(event)
	case exchange.EVENT_CANCELED:
		err = s.OnOrderCancelled(event)
	case exchange.EVENT_FILLED:
		err = s.OnOrderFilled(event)
	default:
		slog.Warn("[LatencyStrategy] Unknown event kind", "kind", event.Kind)
	}
	if err != nil {
		slog.Error("[LatencyStrategy] Callback failed", "kind", event.Kind, "order", event.OrderId, "error", err)
	}
}

// OnTick checks the cancel, execute and create conditions, in that order.
func (s *LatencyStrategy) OnTick(now time.Time) {
	if s.session.executeTimestamp.IsZero() {
		s.session.executeTimestamp = now.Add(s.options.ExecuteInterval)
	}

	if now.Before(s.session.delayTimestamp) {
		return
	}

	if active := s.connector.ActiveOrders(); len(active) > 0 {
		s.session.delayTimestamp = now.Add(s.options.Delay)
		s.cancelAllOrders(active)
		return
	}

	if s.options.TestExecuteLatency && now.After(s.session.executeTimestamp) {
		s.session.delayTimestamp = now.Add(s.options.Delay)
		s.session.executeTimestamp = now.Add(s.options.ExecuteInterval)
		s.session.orderFilled.Set(false)
		s.placeOrder(false)
		return
	}

	if s.options.TestCreateLatency && now.After(s.session.createTimestamp) {
		s.session.delayTimestamp = now.Add(s.options.Delay)
		s.session.createTimestamp = now.Add(s.options.CreateInterval)
		s.placeOrder(true)
	}
}

// cancelAllOrders logs the pre-transmission row, then issues each cancel.
// A persistence failure aborts the remaining cancels of this tick.
func (s *LatencyStrategy) cancelAllOrders(orders []exchange.Order) {
	for _, order := range orders {
		if err := s.log.Record(timestampNow(), order.Id, eventlog.STATE_PENDING_CANCEL); err != nil {
			slog.Error("[LatencyStrategy] Failed to record pending cancel", "order", order.Id, "error", err)
			return
		}
		if err := s.connector.Cancel(order.Pair, order.Id); err != nil {
			slog.Error("[LatencyStrategy] Cancel failed", "order", order.Id, "error", err)
		}
	}
}

func (s *LatencyStrategy) placeOrder(isMaker bool) {
	side, err := s.orderSide()
	if err != nil {
		slog.Error("[LatencyStrategy] Failed to pick order side", "error", err)
		return
	}

	orderType := exchange.TYPE_MARKET
	if isMaker {
		orderType = exchange.TYPE_LIMIT
	}

	currentPrice, err := s.connector.Price(s.options.Pair, side == exchange.SIDE_SELL)
	if err != nil {
		slog.Error("[LatencyStrategy] Failed to fetch price", "error", err)
		return
	}
	price := currentPrice
	if isMaker {
		spread := s.options.OrderSpreadPercent.Div(hundred)
		multiplier := decimal.NewFromInt(1).Add(spread)
		if side == exchange.SIDE_BUY {
			multiplier = decimal.NewFromInt(1).Sub(spread)
		}
		price = currentPrice.Mul(multiplier)
	}

	candidate := &exchange.OrderCandidate{
		Pair:    s.options.Pair,
		IsMaker: isMaker,
		Type:    orderType,
		Side:    side,
		Amount:  s.options.OrderAmount,
		Price:   price,
	}
	adjusted := s.connector.BudgetChecker().AdjustCandidate(candidate, false)
	if adjusted.Amount.IsZero() {
		slog.Info("[LatencyStrategy] Can't create order, not enough funds or amount below threshold",
			"type", candidate.Type, "side", candidate.Side, "amount", candidate.Amount.String())
		return
	}
	s.sendOrder(adjusted)
}

// orderSide compares the base balance valued in quote against the quote
// balance and trades down the larger one.
func (s *LatencyStrategy) orderSide() (exchange.OrderSide, error) {
	baseBalance, err := s.connector.Balance(s.options.Pair.Base())
	if err != nil {
		return "", err
	}
	quoteBalance, err := s.connector.Balance(s.options.Pair.Quote())
	if err != nil {
		return "", err
	}
	currentPrice, err := s.connector.Price(s.options.Pair, false)
	if err != nil {
		return "", err
	}
	if baseBalance.Mul(currentPrice).LessThan(quoteBalance) {
		return exchange.SIDE_BUY, nil
	}
	return exchange.SIDE_SELL, nil
}

// sendOrder transmits the adjusted candidate and logs the row with the
// timestamp taken before transmission.
func (s *LatencyStrategy) sendOrder(candidate *exchange.OrderCandidate) {
	before := timestampNow()
	var orderId string
	var err error
	if candidate.Side == exchange.SIDE_BUY {
		orderId, err = s.connector.Buy(candidate)
	} else {
		orderId, err = s.connector.Sell(candidate)
	}
	if err != nil {
		slog.Error("[LatencyStrategy] Order rejected", "side", candidate.Side, "error", err)
		return
	}
	s.placed.Set(orderId, time.Now())

	state := eventlog.STATE_PENDING_EXECUTE
	if candidate.Type == exchange.TYPE_LIMIT {
		state = eventlog.STATE_PENDING_CREATE
	}
	if err := s.log.Record(before, orderId, state); err != nil {
		slog.Error("[LatencyStrategy] Failed to record order placement", "order", orderId, "error", err)
	}
}

func (s *LatencyStrategy) OnOrderCreated(event *exchange.OrderEvent) error {
	if sent, ok := s.placed.Pop(event.OrderId); ok {
		slog.Info("[LatencyStrategy] Order acknowledged", "order", event.OrderId, "elapsed_ms", float64(time.Since(sent))/1e6)
	}
	return s.log.Record(timestampNow(), event.OrderId, eventlog.STATE_CREATED)
}

func (s *LatencyStrategy) OnOrderCancelled(event *exchange.OrderEvent) error {
	return s.log.Record(timestampNow(), event.OrderId, eventlog.STATE_CANCELED)
}

// OnOrderFilled records only the first fill while the session flag is
// clear; partial fills of the same order produce one row.
func (s *LatencyStrategy) OnOrderFilled(event *exchange.OrderEvent) error {
	if s.session.orderFilled.Get() {
		return nil
	}
	if err := s.log.Record(timestampNow(), event.OrderId, eventlog.STATE_EXECUTED); err != nil {
		return err
	}
	s.session.orderFilled.Set(true)
	return nil
}

func timestampNow() int64 {
	return time.Now().UnixMilli()
}
