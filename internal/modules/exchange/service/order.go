package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/TomToms55/trade-compass-be/internal/models"
)

type createOrderResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		OrderID string `json:"orderId"`
	} `json:"result"`
}

type orderDetailsResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		List []struct {
			OrderID      string `json:"orderId"`
			AvgPrice     string `json:"avgPrice"`
			CumExecQty   string `json:"cumExecQty"`
			CumExecValue string `json:"cumExecValue"`
			UpdatedTime  string `json:"updatedTime"`
		} `json:"list"`
	} `json:"result"`
}

// PlaceMarketOrder отправляет рыночный ордер и дочитывает детали исполнения.
func (c *Client) PlaceMarketOrder(
	ctx context.Context,
	creds models.Credentials,
	symbol string,
	side models.Side,
	qty float64,
	marketType models.MarketType,
	params models.OrderParams,
) (models.Order, error) {
	if qty <= 0 {
		return models.Order{}, ErrInvalidOrder
	}

	sideStr := "Buy"
	if side == models.SideSell {
		sideStr = "Sell"
	}

	body := map[string]any{
		"category":  categoryOf(marketType),
		"symbol":    symbol,
		"side":      sideStr,
		"orderType": "Market",
		"qty":       strconv.FormatFloat(qty, 'f', -1, 64),
	}
	if params.ReduceOnly {
		body["reduceOnly"] = true
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return models.Order{}, errors.Wrap(err, "marshal order body")
	}

	resp, err := c.http.Do(c.generateRequest(ctx, creds, http.MethodPost, "/v5/order/create", "", raw))
	if err != nil {
		return models.Order{}, errors.Wrap(err, "create order")
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return models.Order{}, errors.Errorf("http %d: %s", resp.StatusCode, string(rb))
	}
	var created createOrderResponse
	if err := json.Unmarshal(rb, &created); err != nil {
		return models.Order{}, errors.Wrap(err, "decode create order")
	}
	if created.RetCode != 0 {
		return models.Order{}, errors.Errorf("exchange error %d: %s", created.RetCode, created.RetMsg)
	}

	order, err := c.fetchOrderDetails(ctx, creds, marketType, symbol, created.Result.OrderID)
	if err != nil {
		// ордер размещён — отдаём хотя бы id, остальное заполнит кто сможет
		return models.Order{ID: created.Result.OrderID}, nil
	}
	return order, nil
}

func (c *Client) fetchOrderDetails(ctx context.Context, creds models.Credentials, marketType models.MarketType, symbol, orderID string) (models.Order, error) {
	q := url.Values{}
	q.Set("category", categoryOf(marketType))
	q.Set("symbol", symbol)
	q.Set("orderId", orderID)
	query := q.Encode()

	resp, err := c.http.Do(c.generateRequest(ctx, creds, http.MethodGet, "/v5/order/realtime", query, nil))
	if err != nil {
		return models.Order{}, errors.Wrap(err, "fetch order")
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return models.Order{}, errors.Errorf("http %d: %s", resp.StatusCode, string(rb))
	}
	var details orderDetailsResponse
	if err := json.Unmarshal(rb, &details); err != nil {
		return models.Order{}, errors.Wrap(err, "decode order details")
	}
	if details.RetCode != 0 || len(details.Result.List) == 0 {
		return models.Order{}, errors.Errorf("order %s not found: %s", orderID, details.RetMsg)
	}

	d := details.Result.List[0]
	var ts time.Time
	if ms, err := strconv.ParseInt(d.UpdatedTime, 10, 64); err == nil && ms > 0 {
		ts = time.UnixMilli(ms)
	}
	return models.Order{
		ID:        d.OrderID,
		Timestamp: ts,
		AvgPrice:  parseFloat(d.AvgPrice),
		Cost:      parseFloat(d.CumExecValue),
		Filled:    parseFloat(d.CumExecQty),
	}, nil
}
