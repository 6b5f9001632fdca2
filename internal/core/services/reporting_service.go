package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cajachoca/cajachoca_backend/internal/apperrors"
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	portsrepo "github.com/cajachoca/cajachoca_backend/internal/core/ports/repositories"
	portssvc "github.com/cajachoca/cajachoca_backend/internal/core/ports/services"
	"github.com/cajachoca/cajachoca_backend/internal/middleware"
	"github.com/cajachoca/cajachoca_backend/internal/utils/accounting"
)

// reportingService derives cross-session summaries. It holds no state beyond
// its dependencies and the report timezone; every figure is recomputed from
// the live transaction set.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	sessionRepo   portsrepo.SessionRepositoryFacade
	txnRepo       portsrepo.TransactionRepositoryFacade
	loc           *time.Location
}

// NewReportingService creates a new reporting service. loc is the operator's
// timezone; calendar-day boundaries for daily summaries follow it.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, sessionRepo portsrepo.SessionRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, loc *time.Location) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		sessionRepo:   sessionRepo,
		txnRepo:       txnRepo,
		loc:           loc,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetDailySummary aggregates all movements on one calendar date, regardless
// of which session they belong to, and includes the active session's live
// balance (zero when no session is open).
func (s *reportingService) GetDailySummary(ctx context.Context, date string) (*domain.DailySummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}

	income, err := s.reportingRepo.GetDateTotals(ctx, domain.Income, day, s.loc)
	if err != nil {
		logger.Error("Failed to aggregate income for date", slog.String("error", err.Error()), slog.String("date", date))
		return nil, err
	}
	expense, err := s.reportingRepo.GetDateTotals(ctx, domain.Expense, day, s.loc)
	if err != nil {
		logger.Error("Failed to aggregate expense for date", slog.String("error", err.Error()), slog.String("date", date))
		return nil, err
	}

	currentBalance, err := s.activeSessionBalance(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DailySummary{
		Date:           day.Format(dateLayout),
		TotalIncome:    income.Total,
		TotalExpense:   expense.Total,
		Balance:        income.Total.Sub(expense.Total),
		IncomeCount:    income.Count,
		ExpenseCount:   expense.Count,
		CurrentBalance: currentBalance,
	}, nil
}

// GetTodaySummary is GetDailySummary for today in the report timezone.
func (s *reportingService) GetTodaySummary(ctx context.Context) (*domain.DailySummary, error) {
	return s.GetDailySummary(ctx, time.Now().In(s.loc).Format(dateLayout))
}

// GetTransactionsSummary is the dashboard aggregate for one calendar date.
func (s *reportingService) GetTransactionsSummary(ctx context.Context, date string) (*domain.TransactionsSummary, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}

	income, err := s.reportingRepo.GetDateTotals(ctx, domain.Income, day, s.loc)
	if err != nil {
		return nil, err
	}
	expense, err := s.reportingRepo.GetDateTotals(ctx, domain.Expense, day, s.loc)
	if err != nil {
		return nil, err
	}

	return &domain.TransactionsSummary{
		Date:              day.Format(dateLayout),
		TotalIncome:       income.Total,
		TotalExpense:      expense.Total,
		Balance:           income.Total.Sub(expense.Total),
		IncomeCount:       income.Count,
		ExpenseCount:      expense.Count,
		TotalTransactions: income.Count + expense.Count,
	}, nil
}

// activeSessionBalance recomputes the active session's drawer balance, or
// zero when no session is open.
func (s *reportingService) activeSessionBalance(ctx context.Context) (decimal.Decimal, error) {
	active, err := s.sessionRepo.FindActiveSession(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if active == nil {
		return decimal.Zero, nil
	}

	transactions, err := s.txnRepo.FindTransactionsBySessionID(ctx, active.SessionID)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.CurrentBalance(*active, transactions), nil
}

func (s *reportingService) parseDate(date string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be a YYYY-MM-DD date", apperrors.ErrValidation)
	}
	return day, nil
}
