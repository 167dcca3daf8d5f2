package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sgca/treasury_backend/internal/apperrors"
	"github.com/sgca/treasury_backend/internal/core/domain"
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/sgca/treasury_backend/internal/core/ports/services"
	"github.com/sgca/treasury_backend/internal/dto"
)

// categoryService manages entry categories.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo: categoryRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory persists a new category bound to an account and entry kind.
func (s *categoryService) CreateCategory(ctx context.Context, accountID string, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown category kind %q", apperrors.ErrValidation, req.Kind)
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		AccountID:  accountID,
		Name:       req.Name,
		Kind:       req.Kind,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	s.LogInfo(ctx, "Category created successfully",
		slog.String("category_id", category.CategoryID),
		slog.String("account_id", accountID),
	)
	return &category, nil
}

// GetCategoryByID retrieves a specific category by its ID.
func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	return category, nil
}

// ListCategories retrieves all categories for an account.
func (s *categoryService) ListCategories(ctx context.Context, accountID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}
