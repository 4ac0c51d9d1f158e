package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/refundport/internal/common"
	"github.com/dmitrijs2005/refundport/internal/dbx"
	"github.com/dmitrijs2005/refundport/internal/portal/models"
)

// PostgresRepository stores accounts in PostgreSQL for deployments serving
// many independent sessions.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT email, salt, iv, cipher, created_at, updated_at FROM accounts
		 WHERE email = $1
		 `

	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&a.Email, &a.Salt, &a.IV, &a.Cipher, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w: %w", common.ErrStorageUnavailable, err)
	}

	return a, nil
}

func (r *PostgresRepository) Put(ctx context.Context, account *models.Account) error {
	query :=
		`INSERT INTO accounts (email, salt, iv, cipher, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now(), now())
		 ON CONFLICT (email) DO UPDATE SET
		   salt = excluded.salt,
		   iv = excluded.iv,
		   cipher = excluded.cipher,
		   updated_at = now()
		 `

	// the record commits whole or not at all
	err := dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, query,
			account.Email, account.Salt, account.IV, account.Cipher)
		return err
	})

	if err != nil {
		return fmt.Errorf("put account: %w: %w", common.ErrStorageUnavailable, err)
	}

	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`, email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("check account: %w: %w", common.ErrStorageUnavailable, err)
	}

	return exists, nil
}
