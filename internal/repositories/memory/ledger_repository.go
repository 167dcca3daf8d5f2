package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sgca/treasury_backend/internal/apperrors"
	"github.com/sgca/treasury_backend/internal/core/domain"
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
	"github.com/sgca/treasury_backend/internal/utils/pagination"
)

type MemLedgerRepository struct {
	store *Store
}

var _ portsrepo.LedgerRepositoryFacade = (*MemLedgerRepository)(nil)

// applyDelta mutates the cached balance of an account. Callers must hold the
// store lock.
func (r *MemLedgerRepository) applyDelta(accountID string, delta domain.Money, updatedBy string) {
	acc := r.store.accounts[accountID]
	acc.Balance = acc.Balance.Add(delta)
	acc.Version++
	acc.LastUpdatedAt = time.Now().UTC()
	acc.LastUpdatedBy = updatedBy
	r.store.accounts[accountID] = acc
}

// CreateEntry inserts a new entry and applies delta to the account balance.
// The whole unit runs under the store lock, so concurrent writers serialize
// and neither the entry nor the balance change is ever half-applied.
func (r *MemLedgerRepository) CreateEntry(ctx context.Context, entry domain.Entry, delta domain.Money) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[entry.AccountID]; !ok {
		return fmt.Errorf("%w: account %s not found for balance update", apperrors.ErrNotFound, entry.AccountID)
	}
	if _, ok := r.store.entries[entry.EntryID]; ok {
		return fmt.Errorf("%w: entry with ID %s already exists", apperrors.ErrDuplicate, entry.EntryID)
	}

	r.store.entries[entry.EntryID] = entry
	r.applyDelta(entry.AccountID, delta, entry.LastUpdatedBy)
	return nil
}

// UpdateEntry replaces the stored entry and applies the reversal of the
// stored state followed by the new entry's delta, all under the store lock.
// The reversal comes from the entry as it exists inside the lock, so two
// racing updates of the same entry each reverse exactly the state they
// replace and the cached balance stays equal to the entry log sum.
func (r *MemLedgerRepository) UpdateEntry(ctx context.Context, entry domain.Entry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	old, ok := r.store.entries[entry.EntryID]
	if !ok || old.AccountID != entry.AccountID {
		return apperrors.NewNotFoundError("entry " + entry.EntryID + " not found for update")
	}
	if _, ok := r.store.accounts[entry.AccountID]; !ok {
		return fmt.Errorf("%w: account %s not found for balance update", apperrors.ErrNotFound, entry.AccountID)
	}

	entry.CreatedAt = old.CreatedAt
	entry.CreatedBy = old.CreatedBy
	r.store.entries[entry.EntryID] = entry
	r.applyDelta(entry.AccountID, old.Delta().Neg(), entry.LastUpdatedBy)
	r.applyDelta(entry.AccountID, entry.Delta(), entry.LastUpdatedBy)
	return nil
}

// DeleteEntry removes the entry and reverses its stored effect on the
// account balance, computed under the store lock.
func (r *MemLedgerRepository) DeleteEntry(ctx context.Context, accountID, entryID, deletedBy string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	old, ok := r.store.entries[entryID]
	if !ok || old.AccountID != accountID {
		return apperrors.NewNotFoundError("entry " + entryID + " not found for delete")
	}

	delete(r.store.entries, entryID)
	r.applyDelta(accountID, old.Delta().Neg(), deletedBy)
	return nil
}

// FindEntryByID retrieves an entry by its ID.
func (r *MemLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entry, ok := r.store.entries[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &entry, nil
}

// sortedEntries returns the account's entries ordered newest first with
// entry ID as tie-breaker. Callers must hold the store lock.
func (r *MemLedgerRepository) sortedEntries(accountID string) []domain.Entry {
	entries := make([]domain.Entry, 0)
	for _, e := range r.store.entries {
		if e.AccountID == accountID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].OccurredAt.Equal(entries[j].OccurredAt) {
			return entries[i].OccurredAt.After(entries[j].OccurredAt)
		}
		return entries[i].EntryID > entries[j].EntryID
	})
	return entries
}

// ScanEntries retrieves all entries for an account within [from, to], both
// ends inclusive.
func (r *MemLedgerRepository) ScanEntries(ctx context.Context, accountID string, from, to time.Time) ([]domain.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := []domain.Entry{}
	for _, e := range r.sortedEntries(accountID) {
		if !e.OccurredAt.Before(from) && !e.OccurredAt.After(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

// ListEntries retrieves a paginated list of entries using token-based
// pagination, in the same order as ScanEntries.
func (r *MemLedgerRepository) ListEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries := r.sortedEntries(accountID)

	if nextToken != nil && *nextToken != "" {
		lastOccurredAt, lastEntryID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		// Keep only entries strictly after the cursor in scan order.
		filtered := entries[:0]
		for _, e := range entries {
			if e.OccurredAt.Before(lastOccurredAt) ||
				(e.OccurredAt.Equal(lastOccurredAt) && e.EntryID < lastEntryID) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.OccurredAt, last.EntryID)
		nextTokenVal = &token
		entries = entries[:limit]
	}
	return entries, nextTokenVal, nil
}

// SumEntries recomputes the account balance from the full entry log.
func (r *MemLedgerRepository) SumEntries(ctx context.Context, accountID string) (domain.Money, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sum := domain.ZeroMoney()
	for _, e := range r.store.entries {
		if e.AccountID == accountID {
			sum = sum.Add(e.Delta())
		}
	}
	return sum, nil
}
