package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cajachoca/cajachoca_backend/internal/apperrors"
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	portsrepo "github.com/cajachoca/cajachoca_backend/internal/core/ports/repositories"
	portssvc "github.com/cajachoca/cajachoca_backend/internal/core/ports/services"
	"github.com/cajachoca/cajachoca_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockSessionRepo   *MockSessionRepository
	mockTxnRepo       *MockTransactionRepository
	service           portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockSessionRepo, suite.mockTxnRepo, time.UTC)
}

func (suite *ReportingServiceTestSuite) TestGetDailySummary_WithActiveSession() {
	ctx := context.Background()
	day, _ := time.ParseInLocation("2006-01-02", "2026-08-27", time.UTC)
	active := &domain.Session{SessionID: 1, OpeningAmount: decimal.RequireFromString("100"), IsActive: true}
	transactions := []domain.Transaction{
		{TransactionType: domain.Income, Amount: decimal.RequireFromString("50")},
		{TransactionType: domain.Expense, Amount: decimal.RequireFromString("30")},
	}

	suite.mockReportingRepo.On("GetDateTotals", ctx, domain.Income, day, time.UTC).
		Return(portsrepo.DateTotals{Total: decimal.RequireFromString("50"), Count: 1}, nil).Once()
	suite.mockReportingRepo.On("GetDateTotals", ctx, domain.Expense, day, time.UTC).
		Return(portsrepo.DateTotals{Total: decimal.RequireFromString("30"), Count: 1}, nil).Once()
	suite.mockSessionRepo.On("FindActiveSession", ctx).Return(active, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsBySessionID", ctx, int64(1)).Return(transactions, nil).Once()

	summary, err := suite.service.GetDailySummary(ctx, "2026-08-27")

	suite.Require().NoError(err)
	suite.Equal("2026-08-27", summary.Date)
	suite.True(summary.TotalIncome.Equal(decimal.RequireFromString("50")))
	suite.True(summary.TotalExpense.Equal(decimal.RequireFromString("30")))
	suite.True(summary.Balance.Equal(decimal.RequireFromString("20")))
	suite.EqualValues(1, summary.IncomeCount)
	suite.EqualValues(1, summary.ExpenseCount)
	suite.True(summary.CurrentBalance.Equal(decimal.RequireFromString("120")))
}

func (suite *ReportingServiceTestSuite) TestGetDailySummary_NoActiveSession() {
	ctx := context.Background()
	day, _ := time.ParseInLocation("2006-01-02", "2026-08-27", time.UTC)

	suite.mockReportingRepo.On("GetDateTotals", ctx, domain.Income, day, time.UTC).
		Return(portsrepo.DateTotals{Total: decimal.Zero, Count: 0}, nil).Once()
	suite.mockReportingRepo.On("GetDateTotals", ctx, domain.Expense, day, time.UTC).
		Return(portsrepo.DateTotals{Total: decimal.Zero, Count: 0}, nil).Once()
	suite.mockSessionRepo.On("FindActiveSession", ctx).Return(nil, nil).Once()

	summary, err := suite.service.GetDailySummary(ctx, "2026-08-27")

	suite.Require().NoError(err)
	suite.True(summary.CurrentBalance.IsZero())
	suite.True(summary.Balance.IsZero())
}

func (suite *ReportingServiceTestSuite) TestGetDailySummary_InvalidDate() {
	ctx := context.Background()

	summary, err := suite.service.GetDailySummary(ctx, "27/08/2026")

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestGetTransactionsSummary() {
	ctx := context.Background()
	day, _ := time.ParseInLocation("2006-01-02", "2026-08-27", time.UTC)

	suite.mockReportingRepo.On("GetDateTotals", ctx, domain.Income, day, time.UTC).
		Return(portsrepo.DateTotals{Total: decimal.RequireFromString("75.50"), Count: 3}, nil).Once()
	suite.mockReportingRepo.On("GetDateTotals", ctx, domain.Expense, day, time.UTC).
		Return(portsrepo.DateTotals{Total: decimal.RequireFromString("20"), Count: 2}, nil).Once()

	summary, err := suite.service.GetTransactionsSummary(ctx, "2026-08-27")

	suite.Require().NoError(err)
	suite.True(summary.Balance.Equal(decimal.RequireFromString("55.50")))
	suite.EqualValues(3, summary.IncomeCount)
	suite.EqualValues(2, summary.ExpenseCount)
	suite.EqualValues(5, summary.TotalTransactions)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
