package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/refundport/internal/common"
	"github.com/dmitrijs2005/refundport/internal/portal/models"
)

// MemoryRepository is a map-backed Repository. Safe for concurrent use;
// operations on different emails do not interfere, and operations on the
// same email are serialized by the store mutex.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[string]models.Account)}
}

func (r *MemoryRepository) Get(_ context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[email]
	if !ok {
		return nil, common.ErrAccountNotFound
	}
	// copy out so callers cannot mutate stored state
	cp := a
	cp.Salt = append([]byte(nil), a.Salt...)
	cp.IV = append([]byte(nil), a.IV...)
	cp.Cipher = append([]byte(nil), a.Cipher...)
	return &cp, nil
}

func (r *MemoryRepository) Put(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *account
	cp.Salt = append([]byte(nil), account.Salt...)
	cp.IV = append([]byte(nil), account.IV...)
	cp.Cipher = append([]byte(nil), account.Cipher...)
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	cp.UpdatedAt = time.Now()
	r.accounts[account.Email] = cp
	return nil
}

func (r *MemoryRepository) Exists(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.accounts[email]
	return ok, nil
}
