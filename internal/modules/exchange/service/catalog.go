package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/TomToms55/trade-compass-be/internal/models"
)

type instrumentsResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		Category string       `json:"category"`
		List     []instrument `json:"list"`
	} `json:"result"`
}

type instrument struct {
	Symbol        string `json:"symbol"`
	BaseCoin      string `json:"baseCoin"`
	QuoteCoin     string `json:"quoteCoin"`
	Status        string `json:"status"`
	ContractType  string `json:"contractType"`
	LotSizeFilter struct {
		QtyStep     string `json:"qtyStep"`
		MinOrderQty string `json:"minOrderQty"`
		MaxOrderQty string `json:"maxOrderQty"`
		MinOrderAmt string `json:"minOrderAmt"`
		MaxOrderAmt string `json:"maxOrderAmt"`
	} `json:"lotSizeFilter"`
	PriceFilter struct {
		TickSize string `json:"tickSize"`
	} `json:"priceFilter"`
}

// LoadCatalog собирает метаданные spot и linear инструментов.
// Фильтрация по котируемой валюте и активности — на стороне Market Catalog.
func (c *Client) LoadCatalog(ctx context.Context) ([]models.Market, error) {
	out := make([]models.Market, 0, 512)

	for _, category := range []string{"spot", "linear"} {
		list, err := c.loadInstruments(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("load %s instruments: %w", category, err)
		}
		out = append(out, list...)
	}
	return out, nil
}

func (c *Client) loadInstruments(ctx context.Context, category string) ([]models.Market, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/v5/market/instruments-info?category="+category,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(b))
	}

	var payload instrumentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if payload.RetCode != 0 {
		return nil, fmt.Errorf("exchange error %d: %s", payload.RetCode, payload.RetMsg)
	}

	mt := models.MarketSpot
	if category == "linear" {
		mt = models.MarketFutures
	}

	res := make([]models.Market, 0, len(payload.Result.List))
	for _, inst := range payload.Result.List {
		// у linear интересны только бессрочные контракты
		if category == "linear" && inst.ContractType != "" && inst.ContractType != "LinearPerpetual" {
			continue
		}
		res = append(res, models.Market{
			Symbol:          inst.Symbol,
			Base:            inst.BaseCoin,
			Quote:           inst.QuoteCoin,
			Type:            mt,
			Active:          inst.Status == "Trading",
			AmountPrecision: parseFloat(inst.LotSizeFilter.QtyStep),
			PricePrecision:  parseFloat(inst.PriceFilter.TickSize),
			MinAmount:       parseFloat(inst.LotSizeFilter.MinOrderQty),
			MaxAmount:       parseFloat(inst.LotSizeFilter.MaxOrderQty),
			MinCost:         parseFloat(inst.LotSizeFilter.MinOrderAmt),
			MaxCost:         parseFloat(inst.LotSizeFilter.MaxOrderAmt),
		})
	}
	return res, nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
