package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/TomToms55/trade-compass-be/internal/models"
	"github.com/TomToms55/trade-compass-be/internal/modules/storage/service/pg/credentials"
	"github.com/TomToms55/trade-compass-be/pkg/db"
)

// Credential хранит биржевые ключи владельцев позиций.
type Credential struct {
	db    *db.PgTxManager
	creds *credentials.Credentials
}

// NewCredential instance
func NewCredential(db *db.PgTxManager) *Credential {
	return &Credential{
		db:    db,
		creds: credentials.New(),
	}
}

// FindCredentialsByOwner returns (nil, nil) when the owner has no keys on file.
func (s *Credential) FindCredentialsByOwner(ctx context.Context, ownerID string) (out *models.Credentials, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.FindCredentialsByOwner: %w", err)
		}
	}()
	err = s.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			out, err = s.creds.GetByUserID(ctxTx, tx, ownerID)
			return err
		})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// SaveCredentials создаёт или обновляет ключи владельца.
func (s *Credential) SaveCredentials(ctx context.Context, ownerID string, creds models.Credentials) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.SaveCredentials: %w", err)
		}
	}()
	return s.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			return s.creds.Upsert(ctxTx, tx, ownerID, creds)
		})
}
