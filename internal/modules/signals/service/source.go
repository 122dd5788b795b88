package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/TomToms55/trade-compass-be/internal/models"
	"github.com/TomToms55/trade-compass-be/internal/modules/config"
)

// TradingSignalSource — внешний фид направленных сигналов по активам.
type TradingSignalSource interface {
	GetSignals(ctx context.Context) ([]models.AssetSignal, error)
}

// FeedClient — live-клиент сигнального фида.
type FeedClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewFeedClient(cfg *config.Config) *FeedClient {
	return &FeedClient{
		baseURL: cfg.SignalFeed.BaseURL,
		apiKey:  cfg.SignalFeed.APIKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *FeedClient) GetSignals(ctx context.Context) ([]models.AssetSignal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/signals", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-KEY", f.apiKey)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(b))
	}

	var payload struct {
		Data []models.AssetSignal `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return payload.Data, nil
}

// MockFeed — детерминированный фид для локального запуска и тестов.
type MockFeed struct {
	mu      sync.Mutex
	signals map[string]int
}

func NewMockFeed(cfg *config.Config) *MockFeed {
	m := &MockFeed{signals: make(map[string]int)}
	for _, a := range cfg.Assets {
		m.signals[a] = models.SignalNeutral
	}
	return m
}

func (m *MockFeed) SetSignal(asset string, value int) {
	m.mu.Lock()
	m.signals[asset] = value
	m.mu.Unlock()
}

func (m *MockFeed) GetSignals(ctx context.Context) ([]models.AssetSignal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	out := make([]models.AssetSignal, 0, len(m.signals))
	for asset, v := range m.signals {
		out = append(out, models.AssetSignal{Asset: asset, Value: v, Date: now})
	}
	return out, nil
}
