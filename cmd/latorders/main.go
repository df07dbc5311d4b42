package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"lagmeter/eventlog"
	"lagmeter/exchange"
	"lagmeter/exchange/paper"
	"lagmeter/feed"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	runId := os.Getenv("RUN_ID")
	if runId == "" {
		runId = "local"
	}
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		slog.Error("[Main] Failed to create data dir", "dir", dataDir, "error", err)
		os.Exit(1)
	}

	connector := paper.NewConnector(&paper.Config{
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

	tickers, err := feed.SubscribeTicker(feed.SYMBOL_BNBETH, time.Millisecond*500)
	if err != nil {
		slog.Error("[Main] Failed to subscribe ticker", "error", err)
		os.Exit(1)
	}
	go func() {
		for ticker := range tickers {
			bid, err := decimal.NewFromString(ticker.BidPrice)
			if err != nil {
				continue
			}
			ask, err := decimal.NewFromString(ticker.AskPrice)
			if err != nil {
				continue
			}
			connector.SetQuote(exchange.PAIR_BNBETH, bid, ask)
		}
	}()

	log := eventlog.NewLog(eventlog.Filename(dataDir, connector.Name(), runId))
	strategy := NewLatencyStrategy(connector, log, &LatencyStrategyOptions{
		Pair:               exchange.PAIR_BNBETH,
		OrderAmount:        decimal.RequireFromString("0.01"),
		OrderSpreadPercent: decimal.NewFromInt(5),
		TestCreateLatency:  true,
		TestExecuteLatency: true,
		CreateInterval:     time.Second * 30,
		ExecuteInterval:    time.Second * 300,
		Delay:              time.Second * 5,
	})

	slog.Info("[Main] Latency test started", "pair", exchange.PAIR_BNBETH, "log", log.Path())
	strategy.Run(time.Tick(time.Second))
}
