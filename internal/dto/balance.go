package dto

import (
	"time"

	"github.com/sgca/treasury_backend/internal/core/domain"
)

// BalanceResponse defines the data returned for an account balance query.
type BalanceResponse struct {
	AccountID      string                  `json:"accountID"`
	Balance        domain.Money            `json:"balance"`
	AsOf           time.Time               `json:"asOf"`
	Reconciliation *ReconciliationResponse `json:"reconciliation,omitempty"`
}

// ReconciliationResponse reports the outcome of a balance reconciliation check.
type ReconciliationResponse struct {
	CachedBalance   domain.Money `json:"cachedBalance"`
	ComputedBalance domain.Money `json:"computedBalance"`
	Drift           domain.Money `json:"drift"`
	DriftDetected   bool         `json:"driftDetected"`
	CheckedAt       time.Time    `json:"checkedAt"`
}

// GetBalanceParams defines query parameters for the balance endpoint.
type GetBalanceParams struct {
	Reconcile bool `form:"reconcile,default=false"`
}

// ToReconciliationResponse converts a domain.ReconciliationResult to its DTO.
func ToReconciliationResponse(r *domain.ReconciliationResult) *ReconciliationResponse {
	if r == nil {
		return nil
	}
	return &ReconciliationResponse{
		CachedBalance:   r.Cached,
		ComputedBalance: r.Computed,
		Drift:           r.Drift,
		DriftDetected:   r.DriftDetected,
		CheckedAt:       r.CheckedAt,
	}
}

// ToBalanceResponse converts an account and optional reconciliation result to
// a BalanceResponse DTO.
func ToBalanceResponse(acc *domain.Account, recon *domain.ReconciliationResult) BalanceResponse {
	return BalanceResponse{
		AccountID:      acc.AccountID,
		Balance:        acc.Balance,
		AsOf:           acc.LastUpdatedAt,
		Reconciliation: ToReconciliationResponse(recon),
	}
}
