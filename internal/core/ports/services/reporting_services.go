package services

import (
	"context"

	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
)

// ReportingSvcFacade derives cross-session summaries. All results are
// recomputed from the live transaction set; nothing is cached.
type ReportingSvcFacade interface {
	// GetDailySummary aggregates all movements on one calendar date
	// (YYYY-MM-DD, operator timezone) and includes the active session's
	// live balance.
	GetDailySummary(ctx context.Context, date string) (*domain.DailySummary, error)

	// GetTodaySummary is GetDailySummary for today in the report timezone.
	GetTodaySummary(ctx context.Context) (*domain.DailySummary, error)

	// GetTransactionsSummary is the dashboard aggregate for one date.
	GetTransactionsSummary(ctx context.Context, date string) (*domain.TransactionsSummary, error)
}
