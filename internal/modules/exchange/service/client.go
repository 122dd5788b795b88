package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/TomToms55/trade-compass-be/internal/models"
	"github.com/TomToms55/trade-compass-be/internal/modules/config"
)

const recvWindow = "5000"

// Client — live-реализация Gateway поверх v5 REST API биржи.
// Ключи не хранятся в клиенте: подпись считается от креденшелов владельца позиции.
type Client struct {
	baseURL string
	wsURL   string

	http     *http.Client
	wsDialer *websocket.Dialer
	prices   *PriceCache
}

func NewClient(cfg *config.Config, prices *PriceCache) *Client {
	return &Client{
		baseURL:  cfg.Exchange.BaseURL,
		wsURL:    cfg.Exchange.WSURL,
		http:     &http.Client{Timeout: 10 * time.Second},
		wsDialer: &websocket.Dialer{},
		prices:   prices,
	}
}

// generateRequest подписывает запрос: HMAC-SHA256(ts + key + recvWindow + payload).
func (c *Client) generateRequest(ctx context.Context, creds models.Credentials, method, requestPath, query string, body []byte) *http.Request {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)

	payload := query
	if method != http.MethodGet {
		payload = string(body)
	}
	msg := ts + creds.APIKey + recvWindow + payload
	h := hmac.New(sha256.New, []byte(creds.APISecret))
	h.Write([]byte(msg))

	url := c.baseURL + requestPath
	if query != "" {
		url += "?" + query
	}
	req, _ := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	req.Header.Set("X-BAPI-API-KEY", creds.APIKey)
	req.Header.Set("X-BAPI-SIGN", hex.EncodeToString(h.Sum(nil)))
	req.Header.Set("X-BAPI-TIMESTAMP", ts)
	req.Header.Set("X-BAPI-RECV-WINDOW", recvWindow)
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func categoryOf(mt models.MarketType) string {
	if mt == models.MarketFutures {
		return "linear"
	}
	return "spot"
}
