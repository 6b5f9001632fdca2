package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cajachoca/cajachoca_backend/internal/apperrors"
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	portsrepo "github.com/cajachoca/cajachoca_backend/internal/core/ports/repositories"
	portssvc "github.com/cajachoca/cajachoca_backend/internal/core/ports/services"
	"github.com/cajachoca/cajachoca_backend/internal/dto"
	"github.com/cajachoca/cajachoca_backend/internal/middleware"
)

const (
	defaultListLimit   = 50
	defaultRecentLimit = 5
)

const dateLayout = "2006-01-02"

// transactionService is the transaction journal: CRUD over movements with
// sequential number assignment and balance-aware creation.
type transactionService struct {
	txnRepo      portsrepo.TransactionRepositoryFacade
	sessionRepo  portsrepo.SessionRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewTransactionService creates a new transaction journal service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, sessionRepo portsrepo.SessionRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		sessionRepo:  sessionRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// validateFields checks the field-level rules shared by create and update.
func (s *transactionService) validateFields(amount decimal.Decimal, concept string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	if strings.TrimSpace(concept) == "" {
		return fmt.Errorf("%w: concept is required", apperrors.ErrValidation)
	}
	return nil
}

// validateCategory ensures the referenced category exists, is active and
// matches the transaction type.
func (s *transactionService) validateCategory(ctx context.Context, categoryID int64, txnType domain.TransactionType) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err // ErrNotFound for unknown ids
	}
	if domain.TransactionType(category.CategoryType) != txnType {
		return fmt.Errorf("%w: category %q is a %s category, not %s", apperrors.ErrValidation, category.Name, category.CategoryType, txnType)
	}
	if !category.IsActive {
		return fmt.Errorf("%w: category %q is inactive", apperrors.ErrValidation, category.Name)
	}
	return nil
}

// CreateTransaction registers a movement against the active session.
//
// The expense balance guard lives in the repository's DB transaction, which
// locks the session row and re-reads the balance before inserting, so
// concurrent expense registrations cannot both pass the check.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, createdBy string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.TransactionType.Valid() {
		return nil, fmt.Errorf("%w: transaction type must be income or expense", apperrors.ErrValidation)
	}
	if err := s.validateFields(req.Amount, req.Concept); err != nil {
		return nil, err
	}
	if req.CategoryID == nil {
		return nil, fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}
	if err := s.validateCategory(ctx, *req.CategoryID, req.TransactionType); err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.FindSessionByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsActive {
		return nil, fmt.Errorf("%w: transactions can only be registered against the active session", apperrors.ErrConflict)
	}

	txn := domain.Transaction{
		SessionID:       req.SessionID,
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		Concept:         strings.TrimSpace(req.Concept),
		CategoryID:      req.CategoryID,
		CreatedAt:       time.Now().UTC(),
		CreatedBy:       createdBy,
	}

	created, err := s.txnRepo.CreateTransaction(ctx, txn)
	if err != nil {
		logger.Warn("Failed to create transaction", slog.String("error", err.Error()), slog.Int64("session_id", req.SessionID))
		return nil, err
	}

	logger.Info("Transaction created",
		slog.Int64("transaction_id", created.TransactionID),
		slog.String("number", created.TransactionNumber),
		slog.String("type", string(created.TransactionType)),
		slog.String("amount", created.Amount.String()),
	)
	return created, nil
}

// GetTransactionByID returns one movement with its category name resolved.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// UpdateTransaction corrects a historical movement. Field rules match
// creation, but the session's live balance is deliberately NOT re-checked:
// edits are corrections, not live cash movements, and retroactive balance
// enforcement would make them order-dependent. A correction can therefore
// drive a recomputed historical balance negative; that is accepted.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.validateFields(req.Amount, req.Concept); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, *req.CategoryID, existing.TransactionType); err != nil {
			return nil, err
		}
	}

	updated, err := s.txnRepo.UpdateTransaction(ctx, transactionID, req.Amount, strings.TrimSpace(req.Concept), req.CategoryID)
	if err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.Int64("transaction_id", transactionID))
		return nil, err
	}

	logger.Info("Transaction updated", slog.Int64("transaction_id", transactionID), slog.String("number", updated.TransactionNumber))
	return updated, nil
}

// DeleteTransaction removes a movement permanently. Surviving transactions
// keep their numbers; the sequence never reissues a deleted one.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}

	logger.Info("Transaction deleted", slog.Int64("transaction_id", transactionID))
	return nil
}

// ListTransactions returns one page of the journal plus the total count.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, int64, error) {
	filter := portsrepo.TransactionFilter{
		SessionID: params.SessionID,
		Limit:     params.Limit,
		Offset:    params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	if params.TransactionType != nil {
		if !params.TransactionType.Valid() {
			return nil, 0, fmt.Errorf("%w: transaction type must be income or expense", apperrors.ErrValidation)
		}
		filter.TransactionType = params.TransactionType
	}

	var err error
	if filter.StartDate, err = parseFilterDate(params.StartDate, "startDate"); err != nil {
		return nil, 0, err
	}
	if filter.EndDate, err = parseFilterDate(params.EndDate, "endDate"); err != nil {
		return nil, 0, err
	}

	return s.txnRepo.ListTransactions(ctx, filter)
}

// SearchTransactions matches concept or transaction number by
// case-insensitive substring.
func (s *transactionService) SearchTransactions(ctx context.Context, query string, limit, offset int) ([]domain.Transaction, int64, error) {
	if strings.TrimSpace(query) == "" {
		return nil, 0, fmt.Errorf("%w: search query is required", apperrors.ErrValidation)
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.txnRepo.SearchTransactions(ctx, strings.TrimSpace(query), limit, offset)
}

// ListRecentTransactions returns the newest movements for the dashboard.
func (s *transactionService) ListRecentTransactions(ctx context.Context, sessionID *int64, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	transactions, _, err := s.txnRepo.ListTransactions(ctx, portsrepo.TransactionFilter{
		SessionID: sessionID,
		Limit:     limit,
	})
	return transactions, err
}

func parseFilterDate(value *string, field string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a YYYY-MM-DD date", apperrors.ErrValidation, field)
	}
	return &t, nil
}
