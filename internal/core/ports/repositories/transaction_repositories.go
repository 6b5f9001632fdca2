package repositories

import (
	"context"
	"time"

	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows ListTransactions. Nil fields are not applied.
type TransactionFilter struct {
	SessionID       *int64
	TransactionType *domain.TransactionType
	StartDate       *time.Time // inclusive, compared on the calendar date
	EndDate         *time.Time // inclusive, compared on the calendar date
	Limit           int
	Offset          int
}

// TransactionRepositoryFacade defines persistence operations for the journal.
type TransactionRepositoryFacade interface {
	// CreateTransaction inserts a movement inside one DB transaction that
	// locks the owning session row, re-verifies that it is the active
	// session, re-reads the current balance for the expense guard, and
	// claims the next transaction number from the durable sequence.
	// Returns apperrors.ErrNotFound (unknown session), apperrors.ErrConflict
	// (session not active) or apperrors.ErrInsufficientFunds.
	CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// FindTransactionByID returns the movement (with its category name
	// resolved) or apperrors.ErrNotFound.
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)

	// UpdateTransaction rewrites amount, concept and category of an
	// existing movement. Number, created-at and created-by are untouched.
	UpdateTransaction(ctx context.Context, transactionID int64, amount decimal.Decimal, concept string, categoryID *int64) (*domain.Transaction, error)

	// DeleteTransaction removes the movement permanently. Surviving
	// transactions keep their numbers.
	DeleteTransaction(ctx context.Context, transactionID int64) error

	// FindTransactionsBySessionID returns every movement of one session,
	// oldest first, for summary recomputation.
	FindTransactionsBySessionID(ctx context.Context, sessionID int64) ([]domain.Transaction, error)

	// ListTransactions returns one page plus the total count of matches,
	// ordered created-at descending, ties broken by id descending.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, int64, error)

	// SearchTransactions matches concept or transaction number by
	// case-insensitive substring, same pagination contract as ListTransactions.
	SearchTransactions(ctx context.Context, query string, limit, offset int) ([]domain.Transaction, int64, error)
}
