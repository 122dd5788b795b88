package positions

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/TomToms55/trade-compass-be/internal/models"
	"github.com/TomToms55/trade-compass-be/internal/modules/storage/service/pg/positions/sql"
)

// Positions implement db store
type Positions struct {
	sql *sql.Queries
}

// New instance
func New() *Positions {
	return &Positions{
		sql: sql.New(),
	}
}

func (p *Positions) Insert(ctx context.Context, tx pgx.Tx, pos models.Position) (id string, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Positions.Insert: %w", err)
		}
	}()

	return p.sql.Insert(ctx, tx, &sql.InsertParams{
		UserID:     pos.UserID,
		OrderID:    pos.OrderID,
		OpenedAt:   pgtype.Timestamptz{Time: pos.OpenedAt, Valid: true},
		Symbol:     pos.Symbol,
		MarketType: string(pos.MarketType),
		Side:       string(pos.Side),
		Price:      pos.Price,
		Amount:     pos.Amount,
		Filled:     pos.Filled,
		Cost:       pos.Cost,
	})
}

func (p *Positions) FindOpenBySymbolAndSide(ctx context.Context, tx pgx.Tx, symbol string, side models.Side) (out []models.Position, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Positions.FindOpenBySymbolAndSide: %w", err)
		}
	}()

	rows, err := p.sql.FindOpenBySymbolAndSide(ctx, tx, &sql.FindOpenBySymbolAndSideParams{
		Symbol: symbol,
		Side:   string(side),
	})
	if err != nil {
		return nil, err
	}
	out = make([]models.Position, 0, len(rows))
	for _, row := range rows {
		out = append(out, toModel(row))
	}
	return out, nil
}

func (p *Positions) UpdateClosure(ctx context.Context, tx pgx.Tx, positionID string, closure models.PositionClosure) (pos models.Position, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Positions.UpdateClosure: %w", err)
		}
	}()

	arg := &sql.UpdateClosureParams{
		ID:           positionID,
		CloseOrderID: pgtype.Text{String: closure.OrderID, Valid: closure.OrderID != ""},
		ClosedAt:     pgtype.Timestamptz{Time: closure.ClosedAt, Valid: !closure.ClosedAt.IsZero()},
		ClosePrice:   pgtype.Float8{Float64: closure.Price, Valid: closure.Price > 0},
		DurationMs:   pgtype.Int8{Int64: closure.DurationMs, Valid: true},
		RawSignal:    closure.RawSignal,
	}
	if closure.CloseCost != nil {
		arg.CloseCost = pgtype.Float8{Float64: *closure.CloseCost, Valid: true}
	}
	if closure.Profit != nil {
		arg.Profit = pgtype.Float8{Float64: *closure.Profit, Valid: true}
	}

	row, err := p.sql.UpdateClosure(ctx, tx, arg)
	if err != nil {
		return models.Position{}, err
	}
	return toModel(row), nil
}

func toModel(row *sql.Position) models.Position {
	pos := models.Position{
		ID:         row.ID,
		UserID:     row.UserID,
		OrderID:    row.OrderID,
		OpenedAt:   row.OpenedAt.Time,
		Symbol:     row.Symbol,
		MarketType: models.MarketType(row.MarketType),
		Side:       models.Side(row.Side),
		Price:      row.Price,
		Amount:     row.Amount,
		Filled:     row.Filled,
		Cost:       row.Cost,
		State:      models.PositionState(row.State),
	}
	if row.CloseOrderID.Valid {
		pos.CloseOrderID = row.CloseOrderID.String
	}
	if row.ClosedAt.Valid {
		t := row.ClosedAt.Time
		pos.ClosedAt = &t
	}
	if row.ClosePrice.Valid {
		v := row.ClosePrice.Float64
		pos.ClosePrice = &v
	}
	if row.CloseCost.Valid {
		v := row.CloseCost.Float64
		pos.CloseCost = &v
	}
	if row.Profit.Valid {
		v := row.Profit.Float64
		pos.Profit = &v
	}
	if row.DurationMs.Valid {
		v := row.DurationMs.Int64
		pos.DurationMs = &v
	}
	return pos
}
