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
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo    *MockLedgerRepository
	mockAccountRepo   *MockAccountRepository
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingService

	accountID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockLedgerRepo, suite.mockAccountRepo, suite.mockReportingRepo)
	suite.accountID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) TestFinancialReport_Totals() {
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	entries := []domain.Entry{
		{EntryID: uuid.NewString(), AccountID: suite.accountID, Kind: domain.Credit, Amount: domain.MustMoney("100.00")},
		{EntryID: uuid.NewString(), AccountID: suite.accountID, Kind: domain.Debit, Amount: domain.MustMoney("30.00")},
		{EntryID: uuid.NewString(), AccountID: suite.accountID, Kind: domain.Debit, Amount: domain.MustMoney("10.00")},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(&domain.Account{AccountID: suite.accountID}, nil).Once()
	suite.mockLedgerRepo.On("ScanEntries", ctx, suite.accountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(entries, nil).Once()
	suite.mockReportingRepo.On("CategoryBreakdown", ctx, suite.accountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.CategoryTotal{}, nil).Once()

	report, err := suite.service.FinancialReport(ctx, suite.accountID, start, end)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "100.00", report.TotalCredits.String())
	assert.Equal(suite.T(), "40.00", report.TotalDebits.String())
	assert.Equal(suite.T(), "60.00", report.Net.String())
	assert.Len(suite.T(), report.Entries, 3)
}

func (suite *ReportingServiceTestSuite) TestFinancialReport_RangeEndsAreInclusive() {
	ctx := context.Background()
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(&domain.Account{AccountID: suite.accountID}, nil).Once()
	suite.mockLedgerRepo.On("ScanEntries", ctx, suite.accountID,
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 15, 23, 59, 59, 999999999, time.UTC),
	).Return([]domain.Entry{}, nil).Once()
	suite.mockReportingRepo.On("CategoryBreakdown", ctx, suite.accountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.CategoryTotal{}, nil).Once()

	report, err := suite.service.FinancialReport(ctx, suite.accountID, day, day)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "0.00", report.Net.String())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestFinancialReport_ReversedRangeRejected() {
	ctx := context.Background()
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.FinancialReport(ctx, suite.accountID, start, end)

	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidRange)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ScanEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestFinancialReport_IncludesBreakdown() {
	ctx := context.Background()
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	breakdown := []domain.CategoryTotal{
		{CategoryName: "Fundraising", Kind: domain.Credit, Total: domain.MustMoney("100.00"), EntryCount: 2},
		{CategoryName: "Uncategorized", Kind: domain.Debit, Total: domain.MustMoney("40.00"), EntryCount: 1},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(&domain.Account{AccountID: suite.accountID}, nil).Once()
	suite.mockLedgerRepo.On("ScanEntries", ctx, suite.accountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.Entry{}, nil).Once()
	suite.mockReportingRepo.On("CategoryBreakdown", ctx, suite.accountID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(breakdown, nil).Once()

	report, err := suite.service.FinancialReport(ctx, suite.accountID, day, day)

	suite.Require().NoError(err)
	suite.Require().Len(report.Breakdown, 2)
	assert.Equal(suite.T(), "Fundraising", report.Breakdown[0].CategoryName)
	assert.Equal(suite.T(), 2, report.Breakdown[0].EntryCount)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
