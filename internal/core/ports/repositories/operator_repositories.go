package repositories

import (
	"context"

	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
)

// OperatorRepositoryFacade defines persistence operations for operators.
type OperatorRepositoryFacade interface {
	SaveOperator(ctx context.Context, operator domain.Operator) error
	FindOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error)
	FindOperatorByUsername(ctx context.Context, username string) (*domain.Operator, error)
	CountOperators(ctx context.Context) (int64, error)
}
