package repositories

import (
	"context"
	"time"

	"github.com/sgca/treasury_backend/internal/core/domain"
)

// EntryReader defines read operations for ledger entry data.
type EntryReader interface {
	// FindEntryByID retrieves a specific entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// ScanEntries retrieves all entries for an account whose occurred_at falls
	// within [from, to], ordered by occurred_at descending with entry_id
	// descending as tie-breaker. Each call re-reads current state.
	ScanEntries(ctx context.Context, accountID string, from, to time.Time) ([]domain.Entry, error)

	// ListEntries retrieves a paginated list of entries for an account using
	// token-based pagination, in the same order as ScanEntries.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Entry, *string, error)

	// SumEntries recomputes the account balance from the full entry log:
	// Σ(+amount for credits, -amount for debits).
	SumEntries(ctx context.Context, accountID string) (domain.Money, error)
}

// LedgerWriter defines the atomic mutation operations of the ledger. Each
// operation persists its entry change and applies the paired balance delta to
// the account as one all-or-nothing unit, serialized per account. A failure
// anywhere in the unit leaves neither the entry change nor the balance change
// behind.
type LedgerWriter interface {
	// CreateEntry inserts a new entry and applies delta to the account balance.
	CreateEntry(ctx context.Context, entry domain.Entry, delta domain.Money) error

	// UpdateEntry replaces the stored entry and moves the account balance by
	// the net effect of the change. The reversal of the old entry is computed
	// from the stored state read inside the unit, under the account lock, so
	// a concurrent mutation of the same entry can never leave a stale
	// reversal behind.
	UpdateEntry(ctx context.Context, entry domain.Entry) error

	// DeleteEntry removes the entry and reverses its effect on the account
	// balance, computed from the stored state inside the unit.
	DeleteEntry(ctx context.Context, accountID, entryID, deletedBy string) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces.
// This is a facade for clients that need access to all operations.
type LedgerRepositoryFacade interface {
	EntryReader
	LedgerWriter
}
