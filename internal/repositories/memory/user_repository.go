package memory

import (
	"context"
	"fmt"

	"github.com/sgca/treasury_backend/internal/apperrors"
	"github.com/sgca/treasury_backend/internal/core/domain"
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
)

type MemUserRepository struct {
	store *Store
}

var _ portsrepo.UserRepositoryFacade = (*MemUserRepository)(nil)

// SaveUser persists a new user.
func (r *MemUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.UserID]; ok {
		return fmt.Errorf("%w: user with ID %s already exists", apperrors.ErrDuplicate, user.UserID)
	}
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: user with email %s already exists", apperrors.ErrDuplicate, user.Email)
		}
	}
	r.store.users[user.UserID] = user
	return nil
}

// FindUserByID retrieves a user by their ID.
func (r *MemUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

// FindUserByEmail retrieves a user by their email address.
func (r *MemUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}
