package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cajachoca/cajachoca_backend/internal/apperrors"
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	portsrepo "github.com/cajachoca/cajachoca_backend/internal/core/ports/repositories"
	"github.com/cajachoca/cajachoca_backend/internal/models"
	"github.com/cajachoca/cajachoca_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const operatorColumns = `operator_id, name, username, password_hash, created_at`

// PgxOperatorRepository persists operator accounts.
type PgxOperatorRepository struct {
	BaseRepository
}

// NewOperatorRepository creates a new repository for operator data.
func NewOperatorRepository(pool *pgxpool.Pool) portsrepo.OperatorRepositoryFacade {
	return &PgxOperatorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OperatorRepositoryFacade = (*PgxOperatorRepository)(nil)

// SaveOperator inserts a new operator account.
func (r *PgxOperatorRepository) SaveOperator(ctx context.Context, operator domain.Operator) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO operators (operator_id, name, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`,
		operator.OperatorID,
		operator.Name,
		operator.Username,
		operator.PasswordHash,
		operator.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %q is taken", apperrors.ErrConflict, operator.Username)
		}
		return apperrors.NewAppError(500, "failed to insert operator", err)
	}
	return nil
}

// FindOperatorByID retrieves an operator by its ID.
func (r *PgxOperatorRepository) FindOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error) {
	return r.findOperator(ctx, `SELECT `+operatorColumns+` FROM operators WHERE operator_id = $1;`, operatorID)
}

// FindOperatorByUsername retrieves an operator by its login name.
func (r *PgxOperatorRepository) FindOperatorByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	return r.findOperator(ctx, `SELECT `+operatorColumns+` FROM operators WHERE username = $1;`, username)
}

// CountOperators returns the number of operator accounts. The auth layer
// uses it to decide whether open registration is still allowed.
func (r *PgxOperatorRepository) CountOperators(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM operators;`).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count operators", err)
	}
	return count, nil
}

func (r *PgxOperatorRepository) findOperator(ctx context.Context, query string, arg any) (*domain.Operator, error) {
	var m models.Operator
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.OperatorID,
		&m.Name,
		&m.Username,
		&m.PasswordHash,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: operator %v", apperrors.ErrNotFound, arg)
		}
		return nil, apperrors.NewAppError(500, "failed to find operator", err)
	}

	operator := mapping.ToDomainOperator(m)
	return &operator, nil
}
