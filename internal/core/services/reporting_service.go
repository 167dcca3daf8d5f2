package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sgca/treasury_backend/internal/apperrors"
	"github.com/sgca/treasury_backend/internal/core/domain"
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/sgca/treasury_backend/internal/core/ports/services"
)

// reportingService generates financial reports over date ranges. Report totals
// are always recomputed from the entry log at generation time, never read from
// the cached balance.
type reportingService struct {
	BaseService
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, reportingRepo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{
		ledgerRepo:    ledgerRepo,
		accountRepo:   accountRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// startOfDay truncates a timestamp to midnight UTC.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// endOfDay extends a timestamp to the last representable instant of its day,
// making the range end inclusive.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// FinancialReport generates a report of all transactions for an account
// within [start, end], both ends inclusive.
func (s *reportingService) FinancialReport(ctx context.Context, accountID string, start, end time.Time) (*domain.ReportResult, error) {
	logger := s.GetLogger(ctx)

	from := startOfDay(start)
	to := endOfDay(end)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end %s precedes start %s", apperrors.ErrInvalidRange, end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	entries, err := s.ledgerRepo.ScanEntries(ctx, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to scan entries for report", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve entries for report: %w", err)
	}

	totalCredits := domain.ZeroMoney()
	totalDebits := domain.ZeroMoney()
	for _, e := range entries {
		if e.Kind == domain.Credit {
			totalCredits = totalCredits.Add(e.Amount)
		} else {
			totalDebits = totalDebits.Add(e.Amount)
		}
	}

	breakdown, err := s.reportingRepo.CategoryBreakdown(ctx, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute category breakdown", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to compute category breakdown: %w", err)
	}

	report := &domain.ReportResult{
		AccountID:    accountID,
		Start:        from,
		End:          to,
		Entries:      entries,
		TotalCredits: totalCredits,
		TotalDebits:  totalDebits,
		Net:          totalCredits.Sub(totalDebits),
		Breakdown:    breakdown,
	}

	logger.Info("Financial report generated",
		slog.String("account_id", accountID),
		slog.Int("entry_count", len(entries)),
		slog.String("net", report.Net.String()),
	)
	return report, nil
}
