package services

import (
	"context"

	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	"github.com/cajachoca/cajachoca_backend/internal/dto"
)

// TransactionSvcFacade is the transaction journal: CRUD over movements with
// number assignment and balance-aware creation.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, createdBy string) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID int64) error
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, int64, error)
	SearchTransactions(ctx context.Context, query string, limit, offset int) ([]domain.Transaction, int64, error)
	ListRecentTransactions(ctx context.Context, sessionID *int64, limit int) ([]domain.Transaction, error)
}
