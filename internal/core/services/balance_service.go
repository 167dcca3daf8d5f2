package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sgca/treasury_backend/internal/core/domain"
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/sgca/treasury_backend/internal/core/ports/services"
)

// balanceService serves reads of the cached account balance and runs
// reconciliation checks against the entry log.
type balanceService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewBalanceService creates a new balance service.
func NewBalanceService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.BalanceSvcFacade {
	return &balanceService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetBalance returns the cached balance in constant time. With reconcile set
// it additionally recomputes the balance from the entry log and reports drift
// alongside; the cached value stays the authoritative answer either way.
func (s *balanceService) GetBalance(ctx context.Context, accountID string, reconcile bool) (*domain.Account, *domain.ReconciliationResult, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	if !reconcile {
		return account, nil, nil
	}

	result, err := s.Reconcile(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	return account, result, nil
}

// Reconcile recomputes the balance from the full entry log and compares it
// against the cached value. Detected drift is logged and reported but never
// corrected here; fixing the cache is a deliberate operator action.
func (s *balanceService) Reconcile(ctx context.Context, accountID string) (*domain.ReconciliationResult, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	computed, err := s.ledgerRepo.SumEntries(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to recompute balance from entries", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to recompute balance: %w", err)
	}

	drift := account.Balance.Sub(computed)
	result := &domain.ReconciliationResult{
		AccountID:     accountID,
		Cached:        account.Balance,
		Computed:      computed,
		Drift:         drift,
		DriftDetected: !account.Balance.WithinEpsilon(computed),
		CheckedAt:     time.Now().UTC(),
	}

	if result.DriftDetected {
		s.LogWarn(ctx, "Balance drift detected",
			slog.String("account_id", accountID),
			slog.String("cached", result.Cached.String()),
			slog.String("computed", result.Computed.String()),
			slog.String("drift", result.Drift.String()),
		)
	}

	return result, nil
}
