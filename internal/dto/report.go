package dto

import (
	"time"

	"github.com/sgca/treasury_backend/internal/core/domain"
)

// ReportParams defines query parameters for generating a financial report.
type ReportParams struct {
	StartDate time.Time `form:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `form:"endDate" binding:"required" time_format:"2006-01-02"`
}

// ReportResponse defines the data returned for a financial report.
type ReportResponse struct {
	AccountID    string                  `json:"accountID"`
	Start        time.Time               `json:"start"`
	End          time.Time               `json:"end"`
	Transactions []TransactionResponse   `json:"transactions"`
	TotalCredits domain.Money            `json:"totalCredits"`
	TotalDebits  domain.Money            `json:"totalDebits"`
	Net          domain.Money            `json:"net"`
	Breakdown    []CategoryTotalResponse `json:"breakdown"`
}

// CategoryTotalResponse is one aggregated line of a report's category breakdown.
type CategoryTotalResponse struct {
	CategoryID   string           `json:"categoryID,omitempty"`
	CategoryName string           `json:"categoryName"`
	Kind         domain.EntryKind `json:"kind"`
	Total        domain.Money     `json:"total"`
	EntryCount   int              `json:"entryCount"`
}

// ToReportResponse converts a domain.ReportResult to ReportResponse DTO.
func ToReportResponse(r *domain.ReportResult) ReportResponse {
	breakdown := make([]CategoryTotalResponse, 0, len(r.Breakdown))
	for _, ct := range r.Breakdown {
		breakdown = append(breakdown, CategoryTotalResponse{
			CategoryID:   ct.CategoryID,
			CategoryName: ct.CategoryName,
			Kind:         ct.Kind,
			Total:        ct.Total,
			EntryCount:   ct.EntryCount,
		})
	}
	return ReportResponse{
		AccountID:    r.AccountID,
		Start:        r.Start,
		End:          r.End,
		Transactions: ToTransactionResponses(r.Entries),
		TotalCredits: r.TotalCredits,
		TotalDebits:  r.TotalDebits,
		Net:          r.Net,
		Breakdown:    breakdown,
	}
}
