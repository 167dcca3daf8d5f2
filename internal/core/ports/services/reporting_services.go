package services

import (
	"context"
	"time"

	"github.com/sgca/treasury_backend/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// FinancialReport generates a report of all transactions for an account
	// within [start, end], both ends inclusive, with credit, debit and net
	// totals computed fresh from the entry log.
	FinancialReport(ctx context.Context, accountID string, start, end time.Time) (*domain.ReportResult, error)
}
