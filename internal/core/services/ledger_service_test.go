package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sgca/treasury_backend/internal/apperrors"
	"github.com/sgca/treasury_backend/internal/core/domain"
	portssvc "github.com/sgca/treasury_backend/internal/core/ports/services"
	"github.com/sgca/treasury_backend/internal/core/services"
	"github.com/sgca/treasury_backend/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo   *MockLedgerRepository
	mockAccountRepo  *MockAccountRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.TransactionSvcFacade

	accountID string
	userID    string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewTransactionService(suite.mockLedgerRepo, suite.mockAccountRepo, suite.mockCategoryRepo)
	suite.accountID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) account() *domain.Account {
	return &domain.Account{
		AccountID: suite.accountID,
		Name:      "Treasury",
		Balance:   domain.MustMoney("100.00"),
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:      "50.00",
		Kind:        domain.Credit,
		OccurredAt:  time.Now(),
		Description: "Bake sale revenue",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.account(), nil).Once()
	suite.mockLedgerRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.Entry"), domain.MustMoney("50.00")).Return(nil).Once()

	entry, err := suite.service.CreateTransaction(ctx, suite.accountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	assert.NotEmpty(suite.T(), entry.EntryID)
	assert.Equal(suite.T(), suite.accountID, entry.AccountID)
	assert.Equal(suite.T(), domain.Credit, entry.Kind)
	assert.Equal(suite.T(), "50.00", entry.Amount.String())
	assert.Equal(suite.T(), suite.userID, entry.RecordedBy)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_DebitDeltaIsNegative() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:      "20.00",
		Kind:        domain.Debit,
		OccurredAt:  time.Now(),
		Description: "Pizza for meeting",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.account(), nil).Once()
	suite.mockLedgerRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.Entry"), domain.MustMoney("-20.00")).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.accountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_DefaultsOccurredAtToNow() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:      "50.00",
		Kind:        domain.Credit,
		Description: "Bake sale revenue",
		// OccurredAt deliberately left zero
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.account(), nil).Once()
	suite.mockLedgerRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.Entry"), domain.MustMoney("50.00")).Return(nil).Once()

	entry, err := suite.service.CreateTransaction(ctx, suite.accountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	assert.False(suite.T(), entry.OccurredAt.IsZero())
	assert.WithinDuration(suite.T(), time.Now().UTC(), entry.OccurredAt, 5*time.Second)
	assert.Equal(suite.T(), entry.CreatedAt, entry.OccurredAt)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_KeepsExplicitOccurredAt() {
	ctx := context.Background()
	occurredAt := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	req := dto.CreateTransactionRequest{
		Amount:      "50.00",
		Kind:        domain.Credit,
		OccurredAt:  occurredAt,
		Description: "Bake sale revenue",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.account(), nil).Once()
	suite.mockLedgerRepo.On("CreateEntry", ctx, mock.AnythingOfType("domain.Entry"), domain.MustMoney("50.00")).Return(nil).Once()

	entry, err := suite.service.CreateTransaction(ctx, suite.accountID, req, suite.userID)

	suite.Require().NoError(err)
	assert.True(suite.T(), entry.OccurredAt.Equal(occurredAt))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ValidationFailuresTouchNoStorage() {
	ctx := context.Background()
	base := dto.CreateTransactionRequest{
		Amount:      "50.00",
		Kind:        domain.Credit,
		OccurredAt:  time.Now(),
		Description: "Valid description",
	}

	tests := []struct {
		name   string
		mutate func(r *dto.CreateTransactionRequest)
	}{
		{name: "missing description", mutate: func(r *dto.CreateTransactionRequest) { r.Description = "" }},
		{name: "invalid kind", mutate: func(r *dto.CreateTransactionRequest) { r.Kind = "TRANSFER" }},
		{name: "zero amount", mutate: func(r *dto.CreateTransactionRequest) { r.Amount = "0" }},
		{name: "negative amount", mutate: func(r *dto.CreateTransactionRequest) { r.Amount = "-5.00" }},
		{name: "sub-cent amount", mutate: func(r *dto.CreateTransactionRequest) { r.Amount = "1.999" }},
		{name: "non-numeric amount", mutate: func(r *dto.CreateTransactionRequest) { r.Amount = "fifty" }},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			req := base
			tt.mutate(&req)

			_, err := suite.service.CreateTransaction(ctx, suite.accountID, req, suite.userID)

			suite.Require().Error(err)
			assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
			suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CategoryMismatchRejected() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Amount:      "50.00",
		Kind:        domain.Credit,
		OccurredAt:  time.Now(),
		Description: "Donation",
		CategoryID:  &categoryID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.account(), nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(&domain.Category{
		CategoryID: categoryID,
		AccountID:  suite.accountID,
		Name:       "Supplies",
		Kind:       domain.Debit, // Does not match the credit entry
	}, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.accountID, req, suite.userID)

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	assert.ErrorIs(suite.T(), err, services.ErrCategoryKindMismatch)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_WrongAccountLooksNotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(&domain.Entry{
		EntryID:   entryID,
		AccountID: uuid.NewString(), // Different account
	}, nil).Once()

	_, err := suite.service.GetTransactionByID(ctx, suite.accountID, entryID)

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ReversesOldAndAppliesNewDelta() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existing := &domain.Entry{
		EntryID:     entryID,
		AccountID:   suite.accountID,
		Kind:        domain.Credit,
		Amount:      domain.MustMoney("50.00"),
		OccurredAt:  time.Now().UTC(),
		Description: "Bake sale revenue",
	}

	newAmount := "20.00"
	newKind := domain.Debit
	req := dto.UpdateTransactionRequest{
		Amount: &newAmount,
		Kind:   &newKind,
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(existing, nil).Once()
	// The repository receives the fully merged entry; it reverses the stored
	// state and applies the new delta inside its own atomic unit
	suite.mockLedgerRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.Entry) bool {
		return e.EntryID == entryID && e.Kind == domain.Debit && e.Amount.String() == "20.00"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, suite.accountID, entryID, req, suite.userID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), domain.Debit, updated.Kind)
	assert.Equal(suite.T(), "20.00", updated.Amount.String())
	assert.Equal(suite.T(), suite.userID, updated.LastUpdatedBy)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_InvalidAmountLeavesStateUntouched() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existing := &domain.Entry{
		EntryID:   entryID,
		AccountID: suite.accountID,
		Kind:      domain.Credit,
		Amount:    domain.MustMoney("50.00"),
	}
	badAmount := "10.005"
	req := dto.UpdateTransactionRequest{Amount: &badAmount}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(existing, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, suite.accountID, entryID, req, suite.userID)

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidAmount)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "UpdateEntry", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_RemovesEntryForAccount() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existing := &domain.Entry{
		EntryID:   entryID,
		AccountID: suite.accountID,
		Kind:      domain.Debit,
		Amount:    domain.MustMoney("20.00"),
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(existing, nil).Once()
	// The repository computes the reversal from the stored entry; the service
	// only identifies the row and the acting user
	suite.mockLedgerRepo.On("DeleteEntry", ctx, suite.accountID, entryID, suite.userID).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.accountID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_PassesPaginationThrough() {
	ctx := context.Background()
	token := "next-token"
	entries := []domain.Entry{
		{EntryID: uuid.NewString(), AccountID: suite.accountID, Kind: domain.Credit, Amount: domain.MustMoney("10.00")},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.account(), nil).Once()
	suite.mockLedgerRepo.On("ListEntries", ctx, suite.accountID, 20, (*string)(nil)).Return(entries, &token, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.accountID, dto.ListTransactionsParams{Limit: 20})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	assert.Equal(suite.T(), token, *resp.NextToken)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
