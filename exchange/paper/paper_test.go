package paper

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"lagmeter/exchange"
)

func newTestConnector() *Connector {
	return NewConnector(&Config{
		Name: "paper",
		Balances: map[string]decimal.Decimal{
			"BNB": decimal.RequireFromString("10"),
			"ETH": decimal.RequireFromString("1"),
		},
		Prices: map[exchange.Pair]decimal.Decimal{
			exchange.PAIR_BNBETH: decimal.RequireFromString("0.15"),
		},
		MinAmount: decimal.RequireFromString("0.001"),
	})
}

func TestLimitOrderRestsUntilCancelled(t *testing.T) {
	t.Parallel()

	c := newTestConnector()
	id, err := c.Sell(&exchange.OrderCandidate{
		Pair:   exchange.PAIR_BNBETH,
		Type:   exchange.TYPE_LIMIT,
		Side:   exchange.SIDE_SELL,
		Amount: decimal.RequireFromString("0.01"),
		Price:  decimal.RequireFromString("0.16"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	event := <-c.Events()
	require.Equal(t, exchange.EVENT_CREATED, event.Kind)
	require.Equal(t, id, event.OrderId)

	require.Len(t, c.ActiveOrders(), 1)

	require.NoError(t, c.Cancel(exchange.PAIR_BNBETH, id))
	event = <-c.Events()
	require.Equal(t, exchange.EVENT_CANCELED, event.Kind)
	require.Empty(t, c.ActiveOrders())
}

func TestMarketOrderFillsImmediately(t *testing.T) {
	t.Parallel()

	c := newTestConnector()
	id, err := c.Buy(&exchange.OrderCandidate{
		Pair:   exchange.PAIR_BNBETH,
		Type:   exchange.TYPE_MARKET,
		Side:   exchange.SIDE_BUY,
		Amount: decimal.RequireFromString("0.01"),
		Price:  decimal.RequireFromString("0.15"),
	})
	require.NoError(t, err)

	created := <-c.Events()
	require.Equal(t, exchange.EVENT_CREATED, created.Kind)
	filled := <-c.Events()
	require.Equal(t, exchange.EVENT_FILLED, filled.Kind)
	require.Equal(t, id, filled.OrderId)
	require.Empty(t, c.ActiveOrders())

	bnb, err := c.Balance("BNB")
	require.NoError(t, err)
	require.True(t, bnb.Equal(decimal.RequireFromString("10.01")), "got %s", bnb)
}

func TestCancelUnknownOrderFails(t *testing.T) {
	t.Parallel()

	c := newTestConnector()
	require.Error(t, c.Cancel(exchange.PAIR_BNBETH, "nope"))
}

func TestPriceReturnsSideOfQuote(t *testing.T) {
	t.Parallel()

	c := newTestConnector()
	c.SetQuote(exchange.PAIR_BNBETH, decimal.RequireFromString("0.14"), decimal.RequireFromString("0.16"))

	bid, err := c.Price(exchange.PAIR_BNBETH, false)
	require.NoError(t, err)
	require.True(t, bid.Equal(decimal.RequireFromString("0.14")))

	ask, err := c.Price(exchange.PAIR_BNBETH, true)
	require.NoError(t, err)
	require.True(t, ask.Equal(decimal.RequireFromString("0.16")))

	_, err = c.Price(exchange.PAIR_BTCUSDT, true)
	require.Error(t, err)
}

func TestBudgetCheckerShrinksToAvailable(t *testing.T) {
	t.Parallel()

	c := newTestConnector()
	adjusted := c.BudgetChecker().AdjustCandidate(&exchange.OrderCandidate{
		Pair:   exchange.PAIR_BNBETH,
		Type:   exchange.TYPE_LIMIT,
		Side:   exchange.SIDE_SELL,
		Amount: decimal.RequireFromString("25"),
		Price:  decimal.RequireFromString("0.15"),
	}, false)
	require.True(t, adjusted.Amount.Equal(decimal.RequireFromString("10")), "got %s", adjusted.Amount)
}

func TestBudgetCheckerAllOrNoneZeroesUnderfunded(t *testing.T) {
	t.Parallel()

	c := newTestConnector()
	adjusted := c.BudgetChecker().AdjustCandidate(&exchange.OrderCandidate{
		Pair:   exchange.PAIR_BNBETH,
		Type:   exchange.TYPE_LIMIT,
		Side:   exchange.SIDE_SELL,
		Amount: decimal.RequireFromString("25"),
		Price:  decimal.RequireFromString("0.15"),
	}, true)
	require.True(t, adjusted.Amount.IsZero())
}

func TestBudgetCheckerZeroesBelowMinimum(t *testing.T) {
	t.Parallel()

	c := newTestConnector()
	adjusted := c.BudgetChecker().AdjustCandidate(&exchange.OrderCandidate{
		Pair:   exchange.PAIR_BNBETH,
		Type:   exchange.TYPE_LIMIT,
		Side:   exchange.SIDE_SELL,
		Amount: decimal.RequireFromString("0.0001"),
		Price:  decimal.RequireFromString("0.15"),
	}, false)
	require.True(t, adjusted.Amount.IsZero())
}
