// Package memory provides an in-memory storage backend. It implements the
// same repository ports as the Postgres backend and serializes balance
// mutations with a store-wide lock, so it is suitable for local development
// and tests that exercise the mutation protocol without a database.
package memory

import (
	"sync"

	"github.com/sgca/treasury_backend/internal/core/domain"
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
)

// Store holds all in-memory state. The mutex guards every map; mutation
// operations hold it for the whole entry-plus-balance unit, which gives the
// same all-or-nothing, serialized-per-account behavior as the database
// backend's row locks.
type Store struct {
	mu         sync.RWMutex
	accounts   map[string]domain.Account
	entries    map[string]domain.Entry
	categories map[string]domain.Category
	users      map[string]domain.User
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts:   make(map[string]domain.Account),
		entries:    make(map[string]domain.Entry),
		categories: make(map[string]domain.Category),
		users:      make(map[string]domain.User),
	}
}

// NewRepositoryProvider wires a single store into the repository container.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:    &MemLedgerRepository{store: store},
		AccountRepo:   &MemAccountRepository{store: store},
		CategoryRepo:  &MemCategoryRepository{store: store},
		UserRepo:      &MemUserRepository{store: store},
		ReportingRepo: &MemReportingRepository{store: store},
	}
}
