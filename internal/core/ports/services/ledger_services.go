package services

import (
	"context"

	"github.com/sgca/treasury_backend/internal/core/domain"
	"github.com/sgca/treasury_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for ledger transactions
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction by its ID.
	GetTransactionByID(ctx context.Context, accountID string, entryID string) (*domain.Entry, error)

	// ListTransactions retrieves a paginated list of transactions for an account.
	ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for ledger transactions.
// Every write keeps the account's cached balance in step with the entry log.
type TransactionWriterSvc interface {
	// CreateTransaction validates and persists a new transaction, applying its
	// signed amount to the account balance atomically.
	CreateTransaction(ctx context.Context, accountID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Entry, error)

	// UpdateTransaction replaces an existing transaction, reversing its old
	// effect on the balance and applying the new one atomically.
	UpdateTransaction(ctx context.Context, accountID string, entryID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Entry, error)

	// DeleteTransaction removes a transaction, reversing its effect on the
	// account balance atomically.
	DeleteTransaction(ctx context.Context, accountID string, entryID string, requestingUserID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
// This is a facade for clients that need access to all operations
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// BalanceSvcFacade defines operations over the account balance cache.
type BalanceSvcFacade interface {
	// GetBalance returns the cached balance of an account. When reconcile is
	// true it additionally recomputes the balance from the entry log and
	// reports any drift between the two.
	GetBalance(ctx context.Context, accountID string, reconcile bool) (*domain.Account, *domain.ReconciliationResult, error)

	// Reconcile recomputes the account balance from the entry log and compares
	// it against the cached value. Drift is reported, never corrected.
	Reconcile(ctx context.Context, accountID string) (*domain.ReconciliationResult, error)
}
