package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/sgca/treasury_backend/internal/apperrors"
	"github.com/sgca/treasury_backend/internal/core/domain"
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
)

type MemCategoryRepository struct {
	store *Store
}

var _ portsrepo.CategoryRepositoryFacade = (*MemCategoryRepository)(nil)

// SaveCategory persists a new category.
func (r *MemCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[category.CategoryID]; ok {
		return fmt.Errorf("%w: category %s already exists", apperrors.ErrDuplicate, category.Name)
	}
	r.store.categories[category.CategoryID] = category
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *MemCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	cat, ok := r.store.categories[categoryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &cat, nil
}

// ListCategories retrieves all categories for an account ordered by name.
func (r *MemCategoryRepository) ListCategories(ctx context.Context, accountID string) ([]domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	categories := []domain.Category{}
	for _, cat := range r.store.categories {
		if cat.AccountID == accountID {
			categories = append(categories, cat)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}
