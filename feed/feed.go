package feed

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const baseStreamUrl = "wss://data-stream.binance.vision"

type Symbol string

const (
	SYMBOL_BNBETH  Symbol = "BNBETH"
	SYMBOL_BTCUSDT Symbol = "BTCUSDT"
	SYMBOL_ETHUSDT Symbol = "ETHUSDT"
)

// BookTicker is one best bid/ask update from the bookTicker stream.
type BookTicker struct {
	Symbol   Symbol `json:"s"`
	BidPrice string `json:"b"`
	BidQty   string `json:"B"`
	AskPrice string `json:"a"`
	AskQty   string `json:"A"`
}

// SubscribeTicker streams best bid/ask for the symbol, throttled so at most
// one update per interval reaches the channel. The channel closes when the
// connection drops.
func SubscribeTicker(symbol Symbol, interval time.Duration) (<-chan BookTicker, error) {
	url := baseStreamUrl + "/ws/" + strings.ToLower(string(symbol)) + "@bookTicker"
	slog.Debug("[Feed] SubscribeTicker called", "url", url)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	tickers := make(chan BookTicker, 1024)
	go func() {
		defer close(tickers)
		defer conn.Close()
		last := time.Now()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				slog.Error("[Feed] Failed to read ws message", "error", err)
				return
			}
			var ticker BookTicker
			if err := json.Unmarshal(msg, &ticker); err != nil {
				slog.Warn("[Feed] Failed to unmarshal ws message as BookTicker", "error", err)
				continue
			}
			if time.Since(last) >= interval {
				last = time.Now()
				tickers <- ticker
			}
		}
	}()
	return tickers, nil
}
