package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cajachoca/cajachoca_backend/internal/apperrors"
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	portsrepo "github.com/cajachoca/cajachoca_backend/internal/core/ports/repositories"
	portssvc "github.com/cajachoca/cajachoca_backend/internal/core/ports/services"
	"github.com/cajachoca/cajachoca_backend/internal/dto"
	"github.com/cajachoca/cajachoca_backend/internal/middleware"
	"github.com/cajachoca/cajachoca_backend/internal/utils"
)

// operatorService manages operator accounts and credential verification.
type operatorService struct {
	operatorRepo portsrepo.OperatorRepositoryFacade
}

// NewOperatorService creates a new operator service.
func NewOperatorService(operatorRepo portsrepo.OperatorRepositoryFacade) portssvc.OperatorSvcFacade {
	return &operatorService{operatorRepo: operatorRepo}
}

var _ portssvc.OperatorSvcFacade = (*operatorService)(nil)

// CreateOperator registers a new operator account with a bcrypt password hash.
func (s *operatorService) CreateOperator(ctx context.Context, req dto.CreateOperatorRequest) (*domain.Operator, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if name == "" || username == "" {
		return nil, fmt.Errorf("%w: name and username are required", apperrors.ErrValidation)
	}

	existing, err := s.operatorRepo.FindOperatorByUsername(ctx, username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q is already taken", apperrors.ErrConflict, username)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	operator := domain.Operator{
		OperatorID:   uuid.NewString(),
		Name:         name,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.operatorRepo.SaveOperator(ctx, operator); err != nil {
		logger.Error("Failed to save operator", slog.String("error", err.Error()), slog.String("username", username))
		return nil, err
	}

	logger.Info("Operator created", slog.String("operator_id", operator.OperatorID), slog.String("username", username))
	return &operator, nil
}

// RegisterFirstOperator creates the bootstrap account on a fresh install.
// Once any operator exists the open registration window is closed and new
// accounts can only be created by an authenticated operator.
func (s *operatorService) RegisterFirstOperator(ctx context.Context, req dto.CreateOperatorRequest) (*domain.Operator, error) {
	count, err := s.operatorRepo.CountOperators(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: registration is closed; ask an existing operator to create the account", apperrors.ErrConflict)
	}
	return s.CreateOperator(ctx, req)
}

// GetOperatorByID returns an operator or apperrors.ErrNotFound.
func (s *operatorService) GetOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error) {
	return s.operatorRepo.FindOperatorByID(ctx, operatorID)
}

// Authenticate verifies the credentials. Unknown usernames and wrong
// passwords both return ErrNotFound so existence is not leaked.
func (s *operatorService) Authenticate(ctx context.Context, username, password string) (*domain.Operator, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	operator, err := s.operatorRepo.FindOperatorByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, operator.PasswordHash) {
		logger.Warn("Password mismatch on login", slog.String("username", username))
		return nil, apperrors.ErrNotFound
	}
	return operator, nil
}
