package mapping

import (
	"github.com/sgca/treasury_backend/internal/core/domain"
	"github.com/sgca/treasury_backend/internal/models"
)

// ToModelEntry converts a domain entry to its DB model.
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Kind:        models.EntryKind(d.Kind),
		Amount:      d.Amount.Decimal(),
		OccurredAt:  d.OccurredAt,
		Description: d.Description,
		CategoryID:  d.CategoryID,
		RecordedBy:  d.RecordedBy,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a DB model entry to its domain representation.
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Kind:        domain.EntryKind(m.Kind),
		Amount:      domain.MoneyFromStorage(m.Amount),
		OccurredAt:  m.OccurredAt,
		Description: m.Description,
		CategoryID:  m.CategoryID,
		RecordedBy:  m.RecordedBy,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model entries.
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
