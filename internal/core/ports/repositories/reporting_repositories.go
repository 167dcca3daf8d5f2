package repositories

import (
	"context"
	"time"

	"github.com/sgca/treasury_backend/internal/core/domain"
)

// ReportingRepository defines aggregate read operations used by report
// generation. Aggregates are computed from the entry log, never from the
// cached account balance.
type ReportingRepository interface {
	// CategoryBreakdown aggregates entry totals per category for an account
	// within [from, to]. Entries without a category are grouped together
	// under an empty category ID.
	CategoryBreakdown(ctx context.Context, accountID string, from, to time.Time) ([]domain.CategoryTotal, error)
}
