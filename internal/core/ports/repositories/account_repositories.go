package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sgca/treasury_backend/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier, including
	// the cached balance.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations used inside an open database
// transaction to serialize balance mutations on a single account.
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate retrieves an account within the transaction,
	// acquiring a row lock that is held until the transaction ends.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// ApplyBalanceDeltaInTx adds delta to the account's cached balance within
	// the transaction and bumps its version.
	ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, accountID string, delta domain.Money, updatedBy string) error
}

// AccountRepositoryFacade combines the account repository interfaces every
// storage backend provides.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// AccountRepositoryWithTx extends the facade with transaction-scoped
// operations. Only database-backed repositories implement this.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	AccountTransactionSupport
}
