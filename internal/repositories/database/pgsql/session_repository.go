package pgsql

import (
	"context"
	"errors"
	"fmt"
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

const sessionColumns = `session_id, operator_name, opening_amount, closing_amount, opened_at, closed_at, is_active`

// PgxSessionRepository persists cash sessions.
type PgxSessionRepository struct {
	BaseRepository
}

// NewSessionRepository creates a new repository for session data.
func NewSessionRepository(pool *pgxpool.Pool) portsrepo.SessionRepositoryFacade {
	return &PgxSessionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SessionRepositoryFacade = (*PgxSessionRepository)(nil)

// CreateSession inserts a new active session. The partial unique index on
// sessions(is_active) makes a second concurrent open fail here rather than
// leaving two drawers live.
func (r *PgxSessionRepository) CreateSession(ctx context.Context, operatorName string, openingAmount decimal.Decimal, openedAt time.Time) (*domain.Session, error) {
	query := `
		INSERT INTO sessions (operator_name, opening_amount, opened_at, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING ` + sessionColumns + `;
	`

	var m models.Session
	err := r.Pool.QueryRow(ctx, query, operatorName, openingAmount, openedAt).Scan(
		&m.SessionID,
		&m.OperatorName,
		&m.OpeningAmount,
		&m.ClosingAmount,
		&m.OpenedAt,
		&m.ClosedAt,
		&m.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: another session is already active", apperrors.ErrConflict)
		}
		return nil, apperrors.NewAppError(500, "failed to insert session", err)
	}

	session := mapping.ToDomainSession(m)
	return &session, nil
}

// FindSessionByID retrieves a session by its ID.
func (r *PgxSessionRepository) FindSessionByID(ctx context.Context, sessionID int64) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE session_id = $1;`

	var m models.Session
	err := r.Pool.QueryRow(ctx, query, sessionID).Scan(
		&m.SessionID,
		&m.OperatorName,
		&m.OpeningAmount,
		&m.ClosingAmount,
		&m.OpenedAt,
		&m.ClosedAt,
		&m.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %d", apperrors.ErrNotFound, sessionID)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find session %d", sessionID), err)
	}

	session := mapping.ToDomainSession(m)
	return &session, nil
}

// FindActiveSession returns the single active session, or (nil, nil) when
// no session is open.
func (r *PgxSessionRepository) FindActiveSession(ctx context.Context) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE is_active ORDER BY opened_at DESC LIMIT 1;`

	var m models.Session
	err := r.Pool.QueryRow(ctx, query).Scan(
		&m.SessionID,
		&m.OperatorName,
		&m.OpeningAmount,
		&m.ClosingAmount,
		&m.OpenedAt,
		&m.ClosedAt,
		&m.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find active session", err)
	}

	session := mapping.ToDomainSession(m)
	return &session, nil
}

// CloseSession stamps the closing fields and clears the active flag inside
// one DB transaction. The session row is locked first and its active state
// re-checked, so two concurrent closes cannot both succeed.
func (r *PgxSessionRepository) CloseSession(ctx context.Context, sessionID int64, closingAmount decimal.Decimal, closedAt time.Time) (*domain.Session, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var isActive bool
	err = tx.QueryRow(ctx, `SELECT is_active FROM sessions WHERE session_id = $1 FOR UPDATE;`, sessionID).Scan(&isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %d", apperrors.ErrNotFound, sessionID)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to lock session %d", sessionID), err)
	}
	if !isActive {
		return nil, fmt.Errorf("%w: session %d is not active", apperrors.ErrNotFound, sessionID)
	}

	query := `
		UPDATE sessions
		SET closing_amount = $2, closed_at = $3, is_active = FALSE
		WHERE session_id = $1
		RETURNING ` + sessionColumns + `;
	`

	var m models.Session
	err = tx.QueryRow(ctx, query, sessionID, closingAmount, closedAt).Scan(
		&m.SessionID,
		&m.OperatorName,
		&m.OpeningAmount,
		&m.ClosingAmount,
		&m.OpenedAt,
		&m.ClosedAt,
		&m.IsActive,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to close session %d", sessionID), err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	session := mapping.ToDomainSession(m)
	return &session, nil
}
