package repositories

import (
	"context"
	"time"

	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateTotals holds the aggregate for one transaction type on one date.
type DateTotals struct {
	Total decimal.Decimal
	Count int64
}

// ReportingRepositoryFacade defines the read-only aggregate queries the
// reconciliation reports are built from. Everything is recomputed from the
// live transaction set on every call.
type ReportingRepositoryFacade interface {
	// GetDateTotals sums amounts and counts movements of one type whose
	// created-at falls on the given calendar date in loc.
	GetDateTotals(ctx context.Context, transactionType domain.TransactionType, date time.Time, loc *time.Location) (DateTotals, error)
}
