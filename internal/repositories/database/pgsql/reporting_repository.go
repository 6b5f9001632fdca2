package pgsql

import (
	"context"
	"time"

	"github.com/cajachoca/cajachoca_backend/internal/apperrors"
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	portsrepo "github.com/cajachoca/cajachoca_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReportingRepository aggregates journal totals for reporting.
type PgxReportingRepository struct {
	BaseRepository
}

// NewReportingRepository creates a new repository for reporting aggregates.
func NewReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// GetDateTotals sums amounts and counts movements of one type on one
// calendar day. Days are cut in the report timezone, not in UTC.
func (r *PgxReportingRepository) GetDateTotals(ctx context.Context, transactionType domain.TransactionType, date time.Time, loc *time.Location) (portsrepo.DateTotals, error) {
	var totals portsrepo.DateTotals
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0), COUNT(*)
		FROM transactions
		WHERE transaction_type = $1
		  AND (created_at AT TIME ZONE $2)::date = $3::date;
	`, string(transactionType), loc.String(), date.Format("2006-01-02")).Scan(&totals.Total, &totals.Count)
	if err != nil {
		return portsrepo.DateTotals{}, apperrors.NewAppError(500, "failed to aggregate date totals", err)
	}
	return totals, nil
}
