package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/TomToms55/trade-compass-be/internal/models"
	"github.com/TomToms55/trade-compass-be/internal/modules/config"
)

// GradeSource — внешний фид оценок активов.
type GradeSource interface {
	GetGrades(ctx context.Context, assets []string) ([]models.AssetGrades, error)
}

type GradeClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewGradeClient(cfg *config.Config) *GradeClient {
	return &GradeClient{
		baseURL: cfg.GradeFeed.BaseURL,
		apiKey:  cfg.GradeFeed.APIKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *GradeClient) GetGrades(ctx context.Context, assets []string) ([]models.AssetGrades, error) {
	q := url.Values{}
	q.Set("symbols", strings.Join(assets, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/grades?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-KEY", g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(b))
	}

	var payload struct {
		Data []struct {
			Asset  string    `json:"asset"`
			GradeA float64   `json:"gradeA"`
			GradeB float64   `json:"gradeB"`
			GradeC float64   `json:"gradeC"`
			Date   time.Time `json:"date"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	out := make([]models.AssetGrades, 0, len(payload.Data))
	for _, row := range payload.Data {
		out = append(out, models.AssetGrades{
			Asset:  row.Asset,
			Grades: models.Grades{A: row.GradeA, B: row.GradeB, C: row.GradeC},
			Date:   row.Date,
		})
	}
	return out, nil
}

// MockGrades — случайные, но стабильные в пределах процесса оценки.
type MockGrades struct {
	rnd *rand.Rand
}

func NewMockGrades() *MockGrades {
	return &MockGrades{rnd: rand.New(rand.NewSource(42))}
}

func (m *MockGrades) GetGrades(ctx context.Context, assets []string) ([]models.AssetGrades, error) {
	now := time.Now()
	out := make([]models.AssetGrades, 0, len(assets))
	for _, a := range assets {
		out = append(out, models.AssetGrades{
			Asset: a,
			Grades: models.Grades{
				A: m.rnd.Float64() * 100,
				B: m.rnd.Float64() * 100,
				C: m.rnd.Float64() * 100,
			},
			Date: now,
		})
	}
	return out, nil
}
