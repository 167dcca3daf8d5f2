package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/sgca/treasury_backend/internal/apperrors"
	"github.com/sgca/treasury_backend/internal/core/domain"
	portssvc "github.com/sgca/treasury_backend/internal/core/ports/services"
	"github.com/sgca/treasury_backend/internal/core/services"
	"github.com/sgca/treasury_backend/internal/platform/config"
	"github.com/sgca/treasury_backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade

	password     string
	passwordHash string
}

func (suite *AuthServiceTestSuite) SetupSuite() {
	suite.password = "correct horse battery staple"
	hash, err := utils.HashPassword(suite.password)
	suite.Require().NoError(err)
	suite.passwordHash = hash
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "sgca-treasury-test",
	}
	suite.service = services.NewAuthService(cfg, suite.mockUserRepo)
}

func (suite *AuthServiceTestSuite) user() *domain.User {
	return &domain.User{
		UserID:       uuid.NewString(),
		Email:        "treasurer@example.org",
		PasswordHash: suite.passwordHash,
		Role:         domain.RoleTreasurer,
		IsActive:     true,
	}
}

func (suite *AuthServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	user := suite.user()
	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	got, err := suite.service.Authenticate(ctx, user.Email, suite.password)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), user.UserID, got.UserID)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_FailuresAllLookTheSame() {
	ctx := context.Background()

	// Unknown email
	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.org").Return(nil, apperrors.ErrNotFound).Once()
	_, err := suite.service.Authenticate(ctx, "nobody@example.org", suite.password)
	assert.ErrorIs(suite.T(), err, services.ErrInvalidCredentials)

	// Wrong password
	user := suite.user()
	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()
	_, err = suite.service.Authenticate(ctx, user.Email, "wrong password")
	assert.ErrorIs(suite.T(), err, services.ErrInvalidCredentials)

	// Inactive user
	inactive := suite.user()
	inactive.IsActive = false
	suite.mockUserRepo.On("FindUserByEmail", ctx, inactive.Email).Return(inactive, nil).Once()
	_, err = suite.service.Authenticate(ctx, inactive.Email, suite.password)
	assert.ErrorIs(suite.T(), err, services.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestGenerateAccessToken_CarriesRole() {
	ctx := context.Background()
	user := suite.user()

	token, expiresAt, err := suite.service.GenerateAccessToken(ctx, user)

	suite.Require().NoError(err)
	assert.NotEmpty(suite.T(), token)
	assert.True(suite.T(), expiresAt.After(time.Now()))

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), user.UserID, claims.Subject)
	assert.Equal(suite.T(), string(domain.RoleTreasurer), claims.Role)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
