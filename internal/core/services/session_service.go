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
	"github.com/cajachoca/cajachoca_backend/internal/utils/accounting"
)

// sessionService owns the session ledger: the open/close state machine and
// the single-active-session invariant.
type sessionService struct {
	sessionRepo portsrepo.SessionRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
}

// NewSessionService creates a new session ledger service.
func NewSessionService(sessionRepo portsrepo.SessionRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.SessionSvcFacade {
	return &sessionService{
		sessionRepo: sessionRepo,
		txnRepo:     txnRepo,
	}
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

// OpenSession starts a new cash session in the active state.
func (s *sessionService) OpenSession(ctx context.Context, req dto.OpenSessionRequest) (*domain.Session, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	operatorName := strings.TrimSpace(req.OperatorName)
	if operatorName == "" {
		return nil, fmt.Errorf("%w: operator name is required", apperrors.ErrValidation)
	}
	if req.OpeningAmount.IsNegative() {
		return nil, fmt.Errorf("%w: opening amount cannot be negative", apperrors.ErrValidation)
	}

	// Pre-check for a friendlier message; the partial unique index on
	// sessions.is_active is the authoritative guard under concurrency.
	active, err := s.sessionRepo.FindActiveSession(ctx)
	if err != nil {
		logger.Error("Failed to check for active session", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check for active session: %w", err)
	}
	if active != nil {
		return nil, fmt.Errorf("%w: a session is already active; close it before opening a new one", apperrors.ErrConflict)
	}

	session, err := s.sessionRepo.CreateSession(ctx, operatorName, req.OpeningAmount, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to create session", slog.String("error", err.Error()), slog.String("operator", operatorName))
		return nil, err
	}

	logger.Info("Session opened", slog.Int64("session_id", session.SessionID), slog.String("operator", operatorName))
	return session, nil
}

// GetActiveSession returns the active session or (nil, nil) when none exists.
func (s *sessionService) GetActiveSession(ctx context.Context) (*domain.Session, error) {
	return s.sessionRepo.FindActiveSession(ctx)
}

// HasActiveSession reports whether a session is currently open.
func (s *sessionService) HasActiveSession(ctx context.Context) (bool, error) {
	active, err := s.sessionRepo.FindActiveSession(ctx)
	if err != nil {
		return false, err
	}
	return active != nil, nil
}

// CloseSession reconciles and closes an active session. The expected closing
// balance is recomputed from the full transaction set; the returned
// difference is closingAmount minus that expectation.
func (s *sessionService) CloseSession(ctx context.Context, sessionID int64, closingAmount decimal.Decimal) (*domain.Session, decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if closingAmount.IsNegative() {
		return nil, decimal.Zero, fmt.Errorf("%w: closing amount cannot be negative", apperrors.ErrValidation)
	}

	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !session.IsActive {
		// A closed session is history; closing it again is indistinguishable
		// from referencing a session that is not the active one.
		return nil, decimal.Zero, fmt.Errorf("%w: session %d is not active", apperrors.ErrNotFound, sessionID)
	}

	// Reconcile before mutating anything: a storage fault while loading
	// the transactions must leave the session open, so a retry still finds
	// it active.
	transactions, err := s.txnRepo.FindTransactionsBySessionID(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to load transactions for session close", slog.String("error", err.Error()), slog.Int64("session_id", sessionID))
		return nil, decimal.Zero, fmt.Errorf("failed to compute expected closing: %w", err)
	}

	expectedClosing := accounting.CurrentBalance(*session, transactions)
	difference := accounting.Difference(closingAmount, expectedClosing)

	closed, err := s.sessionRepo.CloseSession(ctx, sessionID, closingAmount, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to close session", slog.String("error", err.Error()), slog.Int64("session_id", sessionID))
		return nil, decimal.Zero, err
	}

	logger.Info("Session closed",
		slog.Int64("session_id", sessionID),
		slog.String("expected_closing", expectedClosing.String()),
		slog.String("closing_amount", closingAmount.String()),
		slog.String("difference", difference.String()),
	)
	return closed, difference, nil
}

// GetSessionSummary recomputes the reconciliation view of a session from its
// full transaction set. Nothing is cached, so repeated calls without writes
// in between return identical results.
func (s *sessionService) GetSessionSummary(ctx context.Context, sessionID int64) (*domain.SessionSummary, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.txnRepo.FindTransactionsBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for session %d: %w", sessionID, err)
	}

	summary := accounting.SummarizeSession(*session, transactions)
	return &summary, nil
}
