package repositories

import (
	"context"
	"time"

	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SessionRepositoryFacade defines persistence operations for cash sessions.
type SessionRepositoryFacade interface {
	// CreateSession inserts a new active session. It returns
	// apperrors.ErrConflict if another session is already active (enforced
	// by the partial unique index on sessions.is_active).
	CreateSession(ctx context.Context, operatorName string, openingAmount decimal.Decimal, openedAt time.Time) (*domain.Session, error)

	// FindSessionByID returns the session or apperrors.ErrNotFound.
	FindSessionByID(ctx context.Context, sessionID int64) (*domain.Session, error)

	// FindActiveSession returns the single active session, or (nil, nil)
	// when no session is active. Having no active session is a normal
	// state, not an error.
	FindActiveSession(ctx context.Context) (*domain.Session, error)

	// CloseSession stamps the closing amount and closed-at time and clears
	// the active flag, all inside one DB transaction that locks the session
	// row. It returns apperrors.ErrNotFound if the session does not exist
	// or is no longer active.
	CloseSession(ctx context.Context, sessionID int64, closingAmount decimal.Decimal, closedAt time.Time) (*domain.Session, error)
}
