package services

import (
	"context"

	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	"github.com/cajachoca/cajachoca_backend/internal/dto"
)

// OperatorSvcFacade manages operator accounts and credential checks.
type OperatorSvcFacade interface {
	CreateOperator(ctx context.Context, req dto.CreateOperatorRequest) (*domain.Operator, error)
	// RegisterFirstOperator creates the bootstrap account. It returns
	// apperrors.ErrConflict once any operator exists.
	RegisterFirstOperator(ctx context.Context, req dto.CreateOperatorRequest) (*domain.Operator, error)
	GetOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error)
	// Authenticate verifies username/password and returns the operator, or
	// apperrors.ErrNotFound for unknown users and bad passwords alike.
	Authenticate(ctx context.Context, username, password string) (*domain.Operator, error)
}
