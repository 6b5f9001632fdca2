package services

import (
	"context"

	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	"github.com/cajachoca/cajachoca_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// SessionSvcFacade is the session ledger: it owns the open/close state
// machine and the single-active-session invariant.
type SessionSvcFacade interface {
	// OpenSession starts a new cash session for an operator.
	OpenSession(ctx context.Context, req dto.OpenSessionRequest) (*domain.Session, error)

	// GetActiveSession returns the active session or (nil, nil) when no
	// session is open. The empty case is a normal state, not an error.
	GetActiveSession(ctx context.Context) (*domain.Session, error)

	// HasActiveSession reports whether a session is currently open.
	HasActiveSession(ctx context.Context) (bool, error)

	// CloseSession reconciles and closes an active session, returning the
	// closed session and the difference between the counted closing amount
	// and the expected closing balance.
	CloseSession(ctx context.Context, sessionID int64, closingAmount decimal.Decimal) (*domain.Session, decimal.Decimal, error)

	// GetSessionSummary recomputes the reconciliation view of a session
	// from its full transaction set.
	GetSessionSummary(ctx context.Context, sessionID int64) (*domain.SessionSummary, error)
}
