package services

import (
	"context"
	"time"

	"github.com/sgca/treasury_backend/internal/core/domain"
)

// AuthSvcFacade defines authentication operations.
type AuthSvcFacade interface {
	// Authenticate verifies the user's credentials and returns the user on success.
	Authenticate(ctx context.Context, email string, password string) (*domain.User, error)

	// GenerateAccessToken issues a signed JWT carrying the user's role.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
