package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/sgca/treasury_backend/internal/apperrors"
	"github.com/sgca/treasury_backend/internal/core/domain"
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
)

type MemAccountRepository struct {
	store *Store
}

var _ portsrepo.AccountRepositoryFacade = (*MemAccountRepository)(nil)

// SaveAccount persists a new account.
func (r *MemAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	r.store.accounts[account.AccountID] = account
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *MemAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	acc, ok := r.store.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

// ListAccounts retrieves all accounts ordered by name.
func (r *MemAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(r.store.accounts))
	for _, acc := range r.store.accounts {
		accounts = append(accounts, acc)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts, nil
}
