package service

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/opentracing/opentracing-go"

	"github.com/TomToms55/trade-compass-be/internal/models"
	health "github.com/TomToms55/trade-compass-be/internal/modules/health/service"
	market "github.com/TomToms55/trade-compass-be/internal/modules/market/service"
	"github.com/TomToms55/trade-compass-be/pkg/logger"
)

// Пороговые значения среднего грейда.
const (
	buyThreshold  = 59.0
	sellThreshold = 41.0
	maxConfidence = 0.99
)

// Classifier превращает грейды в торговые саджесты с учётом доступных рынков.
type Classifier struct {
	grades  GradeSource
	catalog *market.Catalog
	state   *health.State
	assets  []string

	mu     sync.RWMutex
	latest []models.Suggestion
}

func NewClassifier(grades GradeSource, catalog *market.Catalog, state *health.State, assets []string) *Classifier {
	return &Classifier{
		grades:  grades,
		catalog: catalog,
		state:   state,
		assets:  assets,
	}
}

// Generate выполняет один проход классификации по всем отслеживаемым активам.
func (c *Classifier) Generate(ctx context.Context) ([]models.Suggestion, error) {
	span := opentracing.StartSpan("generate-suggestions")
	defer span.Finish()

	rows, err := c.grades.GetGrades(ctx, c.assets)
	if err != nil {
		return nil, fmt.Errorf("Classifier.Generate: %w", err)
	}

	seenSpot := make(map[string]bool)
	out := make([]models.Suggestion, 0, len(rows))

	for _, row := range rows {
		var spot, futures *models.Market
		if m, ok := c.catalog.SpotForAsset(row.Asset); ok {
			spot = &m
		}
		if m, ok := c.catalog.FuturesForAsset(row.Asset); ok {
			futures = &m
		}

		// актив без единого рынка не торгуем
		if spot == nil && futures == nil {
			continue
		}

		// защита от коллизий: spot-символ уже отдан в этом проходе
		if spot != nil && seenSpot[spot.Symbol] {
			logger.Warn("suggestion skipped, duplicate spot symbol %s (%s)", spot.Symbol, row.Asset)
			continue
		}

		action, confidence := classify(row.Grades)

		// шорт без деривативов не предлагаем
		if action == models.ActionSell && futures == nil {
			logger.Info("SELL suggestion for %s skipped: no futures market", row.Asset)
			continue
		}

		if spot != nil {
			seenSpot[spot.Symbol] = true
		}
		out = append(out, models.Suggestion{
			Asset:      row.Asset,
			Spot:       spot,
			Futures:    futures,
			Action:     action,
			Confidence: confidence,
			Grades:     row.Grades,
			Date:       row.Date,
		})
	}

	c.mu.Lock()
	c.latest = out
	c.mu.Unlock()
	if c.state != nil {
		c.state.SetSuggestions(len(out))
	}

	return out, nil
}

// Latest отдаёт снапшот последнего прохода (для внешнего query-слоя).
func (c *Classifier) Latest() []models.Suggestion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Suggestion, len(c.latest))
	copy(out, c.latest)
	return out
}

// classify: avg>=59 BUY, avg<=41 SELL, иначе HOLD.
// Доверие нормируется в [0, 0.99] и округляется до сотых.
func classify(g models.Grades) (models.Action, float64) {
	avg := g.Avg()

	var action models.Action
	var conf float64
	switch {
	case avg >= buyThreshold:
		action = models.ActionBuy
		conf = (avg - buyThreshold) / (100 - buyThreshold)
	case avg <= sellThreshold:
		action = models.ActionSell
		conf = (sellThreshold - avg) / sellThreshold
	default:
		action = models.ActionHold
		conf = 1 - math.Abs(avg-50)/9
	}

	if conf < 0 {
		conf = 0
	}
	if conf > maxConfidence {
		conf = maxConfidence
	}
	conf = math.Round(conf*100) / 100

	return action, conf
}
