package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/TomToms55/trade-compass-be/internal/models"
	"github.com/TomToms55/trade-compass-be/internal/modules/storage/service/pg/positions"
	"github.com/TomToms55/trade-compass-be/pkg/db"
)

// Position — постоянный журнал позиций поверх postgres.
type Position struct {
	db  *db.PgTxManager
	pos *positions.Positions
}

// NewPosition instance
func NewPosition(db *db.PgTxManager) *Position {
	return &Position{
		db:  db,
		pos: positions.New(),
	}
}

// Add records a freshly opened position.
func (s *Position) Add(ctx context.Context, pos models.Position) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.AddPosition: %w", err)
		}
	}()
	return s.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			_, err := s.pos.Insert(ctxTx, tx, pos)
			return err
		})
}

// FindOpenBySymbolAndSide returns OPEN positions matching symbol and side,
// oldest first.
func (s *Position) FindOpenBySymbolAndSide(ctx context.Context, symbol string, side models.Side) (out []models.Position, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.FindOpenBySymbolAndSide: %w", err)
		}
	}()
	err = s.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			out, err = s.pos.FindOpenBySymbolAndSide(ctxTx, tx, symbol, side)
			return err
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateClosure — единственная мутация записи: OPEN -> COMPLETED.
func (s *Position) UpdateClosure(ctx context.Context, positionID string, closure models.PositionClosure) (pos models.Position, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.UpdateClosure: %w", err)
		}
	}()
	err = s.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			pos, err = s.pos.UpdateClosure(ctxTx, tx, positionID, closure)
			return err
		})
	if err != nil {
		return models.Position{}, err
	}
	return pos, nil
}
