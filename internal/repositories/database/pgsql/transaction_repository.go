package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cajachoca/cajachoca_backend/internal/apperrors"
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	portsrepo "github.com/cajachoca/cajachoca_backend/internal/core/ports/repositories"
	"github.com/cajachoca/cajachoca_backend/internal/models"
	"github.com/cajachoca/cajachoca_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// transactionSelect joins categories so listings carry the category name
// without a second round trip.
const transactionSelect = `
	SELECT t.transaction_id, t.session_id, t.transaction_number, t.transaction_type,
	       t.amount, t.concept, t.category_id, c.name AS category_name,
	       t.created_at, t.created_by
	FROM transactions t
	LEFT JOIN categories c ON t.category_id = c.category_id
`

// PgxTransactionRepository persists journal movements. Date filters cut
// days in loc, the same timezone the reporting aggregates use.
type PgxTransactionRepository struct {
	BaseRepository
	loc *time.Location
}

// NewTransactionRepository creates a new repository for transaction data.
func NewTransactionRepository(pool *pgxpool.Pool, loc *time.Location) portsrepo.TransactionRepositoryFacade {
	if loc == nil {
		loc = time.UTC
	}
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}, loc: loc}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// CreateTransaction inserts a movement inside one DB transaction:
//
//  1. lock the owning session row (FOR UPDATE) and re-verify it is active,
//  2. re-read the session balance and apply the expense guard,
//  3. claim the next number from transaction_number_seq,
//  4. insert and re-read the joined row.
//
// The lock serializes concurrent registrations against the same session, so
// two expenses cannot both pass the balance check and overdraw the drawer.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var openingAmount decimal.Decimal
	var isActive bool
	err = tx.QueryRow(ctx,
		`SELECT opening_amount, is_active FROM sessions WHERE session_id = $1 FOR UPDATE;`,
		txn.SessionID,
	).Scan(&openingAmount, &isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %d", apperrors.ErrNotFound, txn.SessionID)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to lock session %d", txn.SessionID), err)
	}
	if !isActive {
		return nil, fmt.Errorf("%w: session %d is not active", apperrors.ErrConflict, txn.SessionID)
	}

	if txn.TransactionType == domain.Expense {
		var movements decimal.Decimal
		err = tx.QueryRow(ctx, `
			SELECT COALESCE(SUM(CASE WHEN transaction_type = 'income' THEN amount ELSE -amount END), 0)
			FROM transactions
			WHERE session_id = $1;
		`, txn.SessionID).Scan(&movements)
		if err != nil {
			return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to compute balance for session %d", txn.SessionID), err)
		}

		balance := openingAmount.Add(movements)
		if txn.Amount.GreaterThan(balance) {
			return nil, fmt.Errorf("%w: current balance is %s", apperrors.ErrInsufficientFunds, balance.StringFixed(2))
		}
	}

	// The sequence lives in the durable store, so numbers stay monotonic
	// and are never reissued, even across deletions and restarts.
	var seq int64
	if err := tx.QueryRow(ctx, `SELECT nextval('transaction_number_seq');`).Scan(&seq); err != nil {
		return nil, apperrors.NewAppError(500, "failed to claim transaction number", err)
	}
	transactionNumber := fmt.Sprintf("TR-%d", seq)

	var transactionID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (session_id, transaction_number, transaction_type, amount, concept, category_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING transaction_id;
	`,
		txn.SessionID,
		transactionNumber,
		string(txn.TransactionType),
		txn.Amount,
		txn.Concept,
		txn.CategoryID,
		txn.CreatedAt,
		txn.CreatedBy,
	).Scan(&transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert transaction", err)
	}

	created, err := r.findByIDWithQuerier(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return created, nil
}

// querier is satisfied by both pgx.Tx and *pgxpool.Pool.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *PgxTransactionRepository) findByIDWithQuerier(ctx context.Context, q querier, transactionID int64) (*domain.Transaction, error) {
	query := transactionSelect + ` WHERE t.transaction_id = $1;`

	var m models.Transaction
	err := q.QueryRow(ctx, query, transactionID).Scan(
		&m.TransactionID,
		&m.SessionID,
		&m.TransactionNumber,
		&m.TransactionType,
		&m.Amount,
		&m.Concept,
		&m.CategoryID,
		&m.CategoryName,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, transactionID)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find transaction %d", transactionID), err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// FindTransactionByID retrieves a movement with its category name resolved.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	return r.findByIDWithQuerier(ctx, r.Pool, transactionID)
}

// UpdateTransaction rewrites amount, concept and category of a movement.
// Transaction number, created-at and created-by are never touched.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, transactionID int64, amount decimal.Decimal, concept string, categoryID *int64) (*domain.Transaction, error) {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE transactions
		SET amount = $2, concept = $3, category_id = $4
		WHERE transaction_id = $1;
	`, transactionID, amount, concept, categoryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to update transaction %d", transactionID), err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, transactionID)
	}

	return r.FindTransactionByID(ctx, transactionID)
}

// DeleteTransaction removes a movement permanently. Other transactions are
// not renumbered.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete transaction %d", transactionID), err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, transactionID)
	}
	return nil
}

// FindTransactionsBySessionID returns every movement of one session, oldest
// first, for summary recomputation.
func (r *PgxTransactionRepository) FindTransactionsBySessionID(ctx context.Context, sessionID int64) ([]domain.Transaction, error) {
	query := transactionSelect + ` WHERE t.session_id = $1 ORDER BY t.created_at, t.transaction_id;`

	rows, err := r.Pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to query transactions for session %d", sessionID), err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListTransactions returns one page of the journal plus the total count of
// matches, ordered created-at descending with id descending as tiebreak.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, int64, error) {
	whereClause := ` WHERE 1=1`
	args := []any{}

	if filter.SessionID != nil {
		args = append(args, *filter.SessionID)
		whereClause += ` AND t.session_id = $` + strconv.Itoa(len(args))
	}
	if filter.TransactionType != nil {
		args = append(args, string(*filter.TransactionType))
		whereClause += ` AND t.transaction_type = $` + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		// Cut days in the report timezone so listings and daily summaries
		// agree on day boundaries.
		args = append(args, r.loc.String())
		day := `(t.created_at AT TIME ZONE $` + strconv.Itoa(len(args)) + `)::date`
		if filter.StartDate != nil {
			args = append(args, filter.StartDate.Format("2006-01-02"))
			whereClause += ` AND ` + day + ` >= $` + strconv.Itoa(len(args)) + `::date`
		}
		if filter.EndDate != nil {
			args = append(args, filter.EndDate.Format("2006-01-02"))
			whereClause += ` AND ` + day + ` <= $` + strconv.Itoa(len(args)) + `::date`
		}
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM transactions t` + whereClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count transactions", err)
	}

	args = append(args, filter.Limit)
	limitPos := strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	offsetPos := strconv.Itoa(len(args))

	query := transactionSelect + whereClause +
		` ORDER BY t.created_at DESC, t.transaction_id DESC LIMIT $` + limitPos + ` OFFSET $` + offsetPos + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return transactions, totalCount, nil
}

// likeEscaper neutralizes the LIKE metacharacters in user input so a
// search term like "50%" matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchTransactions matches concept or transaction number by
// case-insensitive substring, newest first.
func (r *PgxTransactionRepository) SearchTransactions(ctx context.Context, query string, limit, offset int) ([]domain.Transaction, int64, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"

	var totalCount int64
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM transactions t
		WHERE t.concept ILIKE $1 OR t.transaction_number ILIKE $1;
	`, pattern).Scan(&totalCount)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count search matches", err)
	}

	rows, err := r.Pool.Query(ctx, transactionSelect+`
		WHERE t.concept ILIKE $1 OR t.transaction_number ILIKE $1
		ORDER BY t.created_at DESC, t.transaction_id DESC
		LIMIT $2 OFFSET $3;
	`, pattern, limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to search transactions", err)
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return transactions, totalCount, nil
}

func scanTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	transactions := []models.Transaction{}
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(
			&m.TransactionID,
			&m.SessionID,
			&m.TransactionNumber,
			&m.TransactionType,
			&m.Amount,
			&m.Concept,
			&m.CategoryID,
			&m.CategoryName,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		transactions = append(transactions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	return mapping.ToDomainTransactionSlice(transactions), nil
}
