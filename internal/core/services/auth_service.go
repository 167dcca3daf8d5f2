package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sgca/treasury_backend/internal/apperrors"
	"github.com/sgca/treasury_backend/internal/core/domain"
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/sgca/treasury_backend/internal/core/ports/services"
	"github.com/sgca/treasury_backend/internal/platform/config"
	"github.com/sgca/treasury_backend/internal/utils"
)

// ErrInvalidCredentials is returned for any login failure. A single error for
// unknown email, wrong password and inactive account avoids leaking which
// part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// authService implements password authentication and access token issuance.
type authService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Authenticate verifies the user's credentials and returns the user on success.
func (s *authService) Authenticate(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GenerateAccessToken creates a new JWT access token carrying the user's role.
func (s *authService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, expiryTime, nil
}
