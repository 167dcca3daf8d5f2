package dto

import (
	"time"

	"github.com/sgca/treasury_backend/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to record a new transaction.
type CreateTransactionRequest struct {
	Amount      string           `json:"amount" binding:"required,money"`
	Kind        domain.EntryKind `json:"kind" binding:"required,oneof=CREDIT DEBIT"`
	OccurredAt  time.Time        `json:"occurredAt"` // Optional; defaults to the time of recording
	Description string           `json:"description" binding:"required"`
	CategoryID  *string          `json:"categoryID"` // Optional
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	Amount      *string           `json:"amount" binding:"omitempty,money"`
	Kind        *domain.EntryKind `json:"kind" binding:"omitempty,oneof=CREDIT DEBIT"`
	OccurredAt  *time.Time        `json:"occurredAt"`
	Description *string           `json:"description"`
	CategoryID  *string           `json:"categoryID"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	EntryID     string           `json:"entryID"`
	AccountID   string           `json:"accountID"`
	Kind        domain.EntryKind `json:"kind"`
	Amount      domain.Money     `json:"amount"`
	OccurredAt  time.Time        `json:"occurredAt"`
	Description string           `json:"description"`
	CategoryID  *string          `json:"categoryID,omitempty"`
	RecordedBy  string           `json:"recordedBy"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse defines the paginated response for listing transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Entry to TransactionResponse DTO.
func ToTransactionResponse(e *domain.Entry) TransactionResponse {
	return TransactionResponse{
		EntryID:     e.EntryID,
		AccountID:   e.AccountID,
		Kind:        e.Kind,
		Amount:      e.Amount,
		OccurredAt:  e.OccurredAt,
		Description: e.Description,
		CategoryID:  e.CategoryID,
		RecordedBy:  e.RecordedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Entry to []TransactionResponse.
func ToTransactionResponses(entries []domain.Entry) []TransactionResponse {
	responses := make([]TransactionResponse, len(entries))
	for i := range entries {
		responses[i] = ToTransactionResponse(&entries[i])
	}
	return responses
}
