package dto

import (
	"github.com/sgca/treasury_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a new category.
type CreateCategoryRequest struct {
	Name string           `json:"name" binding:"required"`
	Kind domain.EntryKind `json:"kind" binding:"required,oneof=CREDIT DEBIT"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string           `json:"categoryID"`
	AccountID  string           `json:"accountID"`
	Name       string           `json:"name"`
	Kind       domain.EntryKind `json:"kind"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		AccountID:  c.AccountID,
		Name:       c.Name,
		Kind:       c.Kind,
	}
}

// ToCategoryResponses converts a slice of domain.Category to []CategoryResponse.
func ToCategoryResponses(categories []domain.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}
