package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/sgca/treasury_backend/internal/core/domain"
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
)

// PgxReportingRepository implements aggregate report queries over the entry log.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// CategoryBreakdown aggregates entry totals per category for an account
// within [from, to]. Uncategorized entries are grouped under an empty
// category ID.
func (r *PgxReportingRepository) CategoryBreakdown(ctx context.Context, accountID string, from, to time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT
			COALESCE(e.category_id, '') AS category_id,
			COALESCE(c.name, 'Uncategorized') AS category_name,
			e.kind,
			SUM(e.amount) AS total,
			COUNT(*) AS entry_count
		FROM entries e
		LEFT JOIN categories c ON e.category_id = c.category_id
		WHERE e.account_id = $1
			AND e.occurred_at >= $2
			AND e.occurred_at <= $3
		GROUP BY COALESCE(e.category_id, ''), COALESCE(c.name, 'Uncategorized'), e.kind
		ORDER BY category_name, e.kind
	`

	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying category breakdown: %w", err)
	}
	defer rows.Close()

	var result []domain.CategoryTotal
	for rows.Next() {
		var (
			row   domain.CategoryTotal
			kind  string
			total decimal.Decimal
		)
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &kind, &total, &row.EntryCount); err != nil {
			return nil, fmt.Errorf("error scanning category breakdown row: %w", err)
		}
		row.Kind = domain.EntryKind(kind)
		row.Total = domain.MoneyFromStorage(total)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category breakdown rows: %w", err)
	}

	if result == nil {
		result = []domain.CategoryTotal{}
	}
	return result, nil
}
