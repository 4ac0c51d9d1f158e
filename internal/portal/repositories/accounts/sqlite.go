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

// SQLiteRepository stores accounts in a local SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT email, salt, iv, cipher, created_at, updated_at FROM accounts
		 WHERE email = ?
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

func (r *SQLiteRepository) Put(ctx context.Context, account *models.Account) error {
	query :=
		`INSERT INTO accounts (email, salt, iv, cipher, created_at, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		 ON CONFLICT(email) DO UPDATE SET
		   salt = excluded.salt,
		   iv = excluded.iv,
		   cipher = excluded.cipher,
		   updated_at = CURRENT_TIMESTAMP
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

func (r *SQLiteRepository) Exists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE email = ?`, email).Scan(&n)

	if err != nil {
		return false, fmt.Errorf("check account: %w: %w", common.ErrStorageUnavailable, err)
	}

	return n > 0, nil
}
