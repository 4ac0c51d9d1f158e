// Package accounts provides the account store: persistence of encrypted
// account records keyed by normalized email. Implementations exist for a
// local SQLite file (single-user client), PostgreSQL (multi-user
// deployments), and an in-memory map (tests, throwaway sessions).
package accounts

import (
	"context"

	"github.com/dmitrijs2005/refundport/internal/portal/models"
)

// Repository is the account persistence contract.
//
// Get returns common.ErrAccountNotFound for an absent record. Put overwrites
// unconditionally and always stores the complete record, so salt, IV, and
// ciphertext can never drift apart. Backend I/O failures wrap
// common.ErrStorageUnavailable.
type Repository interface {
	Get(ctx context.Context, email string) (*models.Account, error)
	Put(ctx context.Context, account *models.Account) error
	Exists(ctx context.Context, email string) (bool, error)
}
