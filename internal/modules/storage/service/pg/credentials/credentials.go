package credentials

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/TomToms55/trade-compass-be/internal/models"
	"github.com/TomToms55/trade-compass-be/internal/modules/storage/service/pg/credentials/sql"
)

// Credentials implement db store
type Credentials struct {
	sql *sql.Queries
}

// New instance
func New() *Credentials {
	return &Credentials{
		sql: sql.New(),
	}
}

func (c *Credentials) GetByUserID(ctx context.Context, tx pgx.Tx, userID string) (creds *models.Credentials, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Credentials.GetByUserID: %w", err)
		}
	}()

	row, err := c.sql.GetByUserID(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	return &models.Credentials{
		APIKey:    row.ApiKey,
		APISecret: row.ApiSecret,
	}, nil
}

func (c *Credentials) Upsert(ctx context.Context, tx pgx.Tx, userID string, creds models.Credentials) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Credentials.Upsert: %w", err)
		}
	}()

	return c.sql.Upsert(ctx, tx, &sql.UpsertParams{
		UserID:    userID,
		ApiKey:    creds.APIKey,
		ApiSecret: creds.APISecret,
	})
}
