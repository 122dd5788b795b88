package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/TomToms55/trade-compass-be/internal/models"
)

type walletBalanceResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		List []struct {
			AccountType string `json:"accountType"`
			Coin        []struct {
				Coin          string `json:"coin"`
				WalletBalance string `json:"walletBalance"`
				Free          string `json:"availableToWithdraw"`
			} `json:"coin"`
		} `json:"list"`
	} `json:"result"`
}

func (c *Client) FetchBalance(ctx context.Context, creds models.Credentials, marketType models.MarketType) (models.Balance, error) {
	q := url.Values{}
	q.Set("accountType", "UNIFIED")
	query := q.Encode()

	resp, err := c.http.Do(c.generateRequest(ctx, creds, http.MethodGet, "/v5/account/wallet-balance", query, nil))
	if err != nil {
		return models.Balance{}, errors.Wrap(err, "fetch balance")
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return models.Balance{}, errors.Errorf("http %d: %s", resp.StatusCode, string(rb))
	}
	var payload walletBalanceResponse
	if err := json.Unmarshal(rb, &payload); err != nil {
		return models.Balance{}, errors.Wrap(err, "decode balance")
	}
	if payload.RetCode != 0 {
		return models.Balance{}, errors.Errorf("exchange error %d: %s", payload.RetCode, payload.RetMsg)
	}

	bal := models.Balance{
		Total: make(map[string]float64),
		Free:  make(map[string]float64),
	}
	for _, acc := range payload.Result.List {
		for _, coin := range acc.Coin {
			bal.Total[coin.Coin] = parseFloat(coin.WalletBalance)
			bal.Free[coin.Coin] = parseFloat(coin.Free)
		}
	}
	return bal, nil
}
