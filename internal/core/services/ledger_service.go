package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sgca/treasury_backend/internal/apperrors"
	"github.com/sgca/treasury_backend/internal/core/domain"
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/sgca/treasury_backend/internal/core/ports/services"
	"github.com/sgca/treasury_backend/internal/dto"
)

var (
	ErrDescriptionMissing      = errors.New("transaction description is required")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrCategoryAccountMismatch = errors.New("category belongs to a different account")
	ErrCategoryKindMismatch    = errors.New("category kind does not match transaction kind")
)

// transactionService provides the ledger mutation and read operations. Every
// write validates its input completely before touching storage; the paired
// balance delta is computed here and applied atomically by the repository.
type transactionService struct {
	BaseService
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		ledgerRepo:   ledgerRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// parseAmount validates an amount string as a strictly positive ledger amount.
func parseAmount(s string) (domain.Money, error) {
	amount, err := domain.MoneyFromString(s)
	if err != nil {
		return domain.ZeroMoney(), err
	}
	if !amount.IsPositive() {
		return domain.ZeroMoney(), fmt.Errorf("%w: amount must be strictly positive, got %s", apperrors.ErrInvalidAmount, amount)
	}
	return amount, nil
}

// validateCategory checks that a referenced category exists, belongs to the
// entry's account, and matches the entry's kind.
func (s *transactionService) validateCategory(ctx context.Context, accountID string, categoryID *string, kind domain.EntryKind) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, *categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %w: ID %s", apperrors.ErrValidation, ErrCategoryNotFound, *categoryID)
		}
		return fmt.Errorf("failed to fetch category %s: %w", *categoryID, err)
	}
	if category.AccountID != accountID {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrCategoryAccountMismatch)
	}
	if category.Kind != kind {
		return fmt.Errorf("%w: %w: category is %s, transaction is %s", apperrors.ErrValidation, ErrCategoryKindMismatch, category.Kind, kind)
	}
	return nil
}

// CreateTransaction validates and persists a new transaction. The entry insert
// and the balance delta commit together or not at all.
func (s *transactionService) CreateTransaction(ctx context.Context, accountID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Entry, error) {
	logger := s.GetLogger(ctx)

	// --- Validation: everything checked before any write ---
	if req.Description == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrDescriptionMissing)
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, req.Kind)
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	if err := s.validateCategory(ctx, accountID, req.CategoryID, req.Kind); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	occurredAt := req.OccurredAt.UTC()
	if req.OccurredAt.IsZero() {
		occurredAt = now
	}
	entry := domain.Entry{
		EntryID:     uuid.NewString(),
		AccountID:   accountID,
		Kind:        req.Kind,
		Amount:      amount,
		OccurredAt:  occurredAt,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		RecordedBy:  creatorUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.CreateEntry(ctx, entry, entry.Delta()); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction created successfully",
		slog.String("entry_id", entry.EntryID),
		slog.String("account_id", accountID),
		slog.String("kind", string(entry.Kind)),
		slog.String("amount", entry.Amount.String()),
	)
	return &entry, nil
}

// GetTransactionByID retrieves a specific transaction scoped to an account.
func (s *transactionService) GetTransactionByID(ctx context.Context, accountID string, entryID string) (*domain.Entry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", entryID, err)
	}
	if entry.AccountID != accountID {
		// Obscure existence of entries in other accounts
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// ListTransactions retrieves a paginated list of transactions for an account.
func (s *transactionService) ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	entries, nextToken, err := s.ledgerRepo.ListEntries(ctx, accountID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(entries),
		NextToken:    nextToken,
	}, nil
}

// UpdateTransaction replaces an existing transaction. The old entry's effect
// is reversed and the new effect applied in one atomic unit, so the cached
// balance never reflects a half-applied edit.
func (s *transactionService) UpdateTransaction(ctx context.Context, accountID string, entryID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Entry, error) {
	logger := s.GetLogger(ctx)

	existing, err := s.GetTransactionByID(ctx, accountID, entryID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			return nil, err
		}
		updated.Amount = amount
	}
	if req.Kind != nil {
		if !req.Kind.Valid() {
			return nil, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, *req.Kind)
		}
		updated.Kind = *req.Kind
	}
	if req.OccurredAt != nil {
		updated.OccurredAt = req.OccurredAt.UTC()
	}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrDescriptionMissing)
		}
		updated.Description = *req.Description
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			updated.CategoryID = nil // Explicitly clearing the category
		} else {
			updated.CategoryID = req.CategoryID
		}
	}

	// Re-validate the category against the possibly changed kind
	if err := s.validateCategory(ctx, accountID, updated.CategoryID, updated.Kind); err != nil {
		return nil, err
	}

	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = requestingUserID

	// The repository reverses the stored entry's effect and applies the new
	// one inside a single atomic unit, reading the old state under the
	// account lock. The read above only seeds the field merge.
	if err := s.ledgerRepo.UpdateEntry(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	logger.Info("Transaction updated successfully",
		slog.String("entry_id", entryID),
		slog.String("account_id", accountID),
	)
	return &updated, nil
}

// DeleteTransaction removes a transaction and reverses its effect on the
// account balance atomically.
func (s *transactionService) DeleteTransaction(ctx context.Context, accountID string, entryID string, requestingUserID string) error {
	logger := s.GetLogger(ctx)

	if _, err := s.GetTransactionByID(ctx, accountID, entryID); err != nil {
		return err
	}

	if err := s.ledgerRepo.DeleteEntry(ctx, accountID, entryID, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	logger.Info("Transaction deleted successfully",
		slog.String("entry_id", entryID),
		slog.String("account_id", accountID),
	)
	return nil
}
