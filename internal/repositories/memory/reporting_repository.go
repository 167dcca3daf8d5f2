package memory

import (
	"context"
	"sort"
	"time"

	"github.com/sgca/treasury_backend/internal/core/domain"
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
)

// MemReportingRepository computes report aggregates from the in-memory entry log.
type MemReportingRepository struct {
	store *Store
}

var _ portsrepo.ReportingRepository = (*MemReportingRepository)(nil)

// CategoryBreakdown aggregates entry totals per category for an account
// within [from, to]. Uncategorized entries are grouped under an empty
// category ID.
func (r *MemReportingRepository) CategoryBreakdown(_ context.Context, accountID string, from, to time.Time) ([]domain.CategoryTotal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	type groupKey struct {
		categoryID string
		kind       domain.EntryKind
	}
	groups := make(map[groupKey]*domain.CategoryTotal)

	for _, e := range r.store.entries {
		if e.AccountID != accountID {
			continue
		}
		if e.OccurredAt.Before(from) || e.OccurredAt.After(to) {
			continue
		}

		key := groupKey{kind: e.Kind}
		name := "Uncategorized"
		if e.CategoryID != nil {
			key.categoryID = *e.CategoryID
			if category, ok := r.store.categories[*e.CategoryID]; ok {
				name = category.Name
			}
		}

		group, ok := groups[key]
		if !ok {
			group = &domain.CategoryTotal{
				CategoryID:   key.categoryID,
				CategoryName: name,
				Kind:         e.Kind,
				Total:        domain.ZeroMoney(),
			}
			groups[key] = group
		}
		group.Total = group.Total.Add(e.Amount)
		group.EntryCount++
	}

	result := make([]domain.CategoryTotal, 0, len(groups))
	for _, group := range groups {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CategoryName != result[j].CategoryName {
			return result[i].CategoryName < result[j].CategoryName
		}
		return result[i].Kind < result[j].Kind
	})
	return result, nil
}
