package mapping

import (
	"github.com/sgca/treasury_backend/internal/core/domain"
	"github.com/sgca/treasury_backend/internal/models"
)

// ToModelAccount converts a domain account to its DB model.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Name:        d.Name,
		Description: d.Description,
		Balance:     d.Balance.Decimal(),
		Version:     d.Version,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a DB model account to its domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Name:        m.Name,
		Description: m.Description,
		Balance:     domain.MoneyFromStorage(m.Balance),
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
