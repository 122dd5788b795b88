package service

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// StreamTickers — один WebSocket на пачку символов, обновляет PriceCache
// последней ценой сделки. Реконнект с паузой в секунду.
func (c *Client) StreamTickers(ctx context.Context, symbols []string) {
	if len(symbols) == 0 || c.wsURL == "" {
		return
	}

	args := make([]string, 0, len(symbols))
	for _, s := range symbols {
		args = append(args, "tickers."+s)
	}

	for {
		log.Printf("[WS] tickers connect, %d symbols", len(symbols))
		conn, _, err := c.wsDialer.Dial(c.wsURL, nil)
		if err != nil {
			log.Printf("[WS] tickers dial error: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		sub := map[string]any{
			"op":   "subscribe",
			"args": args,
		}
		if err := conn.WriteJSON(sub); err != nil {
			log.Printf("[WS] tickers subscribe error: %v", err)
			_ = conn.Close()
			continue
		}

		// keepalive ping каждые 20s
		stopPing := make(chan struct{})
		go func() {
			defer close(stopPing)
			t := time.NewTicker(20 * time.Second)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-stopPing:
					return
				case <-t.C:
					_ = conn.WriteJSON(map[string]string{"op": "ping"})
				}
			}
		}()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				log.Printf("[WS] tickers read error: %v", err)
				_ = conn.Close()
				break
			}

			var frame struct {
				Topic string `json:"topic"`
				Data  struct {
					Symbol    string `json:"symbol"`
					LastPrice string `json:"lastPrice"`
				} `json:"data"`
			}
			if err := json.Unmarshal(msg, &frame); err != nil {
				continue
			}
			if frame.Data.Symbol == "" {
				continue
			}
			if px := parseFloat(frame.Data.LastPrice); px > 0 {
				c.prices.SetPrice(frame.Data.Symbol, px)
			}
		}

		select {
		case <-ctx.Done():
			return
		default:
			time.Sleep(time.Second)
		}
	}
}
