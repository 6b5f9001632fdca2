package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cajachoca/cajachoca_backend/internal/apperrors"
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	portsrepo "github.com/cajachoca/cajachoca_backend/internal/core/ports/repositories"
	portssvc "github.com/cajachoca/cajachoca_backend/internal/core/ports/services"
	"github.com/cajachoca/cajachoca_backend/internal/dto"
	"github.com/cajachoca/cajachoca_backend/internal/middleware"
)

// categoryService maintains the registry of classification tags.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category registry service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory creates a new active category. Duplicate names within the
// same type are rejected by the unique index and surface as ErrValidation.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}
	if !req.CategoryType.Valid() {
		return nil, fmt.Errorf("%w: category type must be income or expense", apperrors.ErrValidation)
	}

	category, err := s.categoryRepo.SaveCategory(ctx, name, req.CategoryType)
	if err != nil {
		logger.Warn("Failed to create category", slog.String("error", err.Error()), slog.String("name", name))
		return nil, err
	}

	logger.Info("Category created", slog.Int64("category_id", category.CategoryID), slog.String("name", name), slog.String("type", string(category.CategoryType)))
	return category, nil
}

// UpdateCategory renames a category. The type is immutable after creation:
// changing it would invalidate the classification of historical transactions.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID int64, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}

	if _, err := s.categoryRepo.FindCategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.RenameCategory(ctx, categoryID, name)
	if err != nil {
		logger.Warn("Failed to rename category", slog.String("error", err.Error()), slog.Int64("category_id", categoryID))
		return nil, err
	}

	logger.Info("Category renamed", slog.Int64("category_id", categoryID), slog.String("name", name))
	return category, nil
}

// DeleteCategory soft-deactivates a category. Transactions referencing it
// are untouched and keep resolving its name; deactivation is the default
// safe policy under referential integrity.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.categoryRepo.FindCategoryByID(ctx, categoryID); err != nil {
		return err
	}

	if err := s.categoryRepo.DeactivateCategory(ctx, categoryID); err != nil {
		logger.Error("Failed to deactivate category", slog.String("error", err.Error()), slog.Int64("category_id", categoryID))
		return err
	}

	logger.Info("Category deactivated", slog.Int64("category_id", categoryID))
	return nil
}

// ListCategories returns all active categories in creation order.
func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx, nil)
}

// ListCategoriesByType returns active categories of one type in creation order.
func (s *categoryService) ListCategoriesByType(ctx context.Context, categoryType domain.CategoryType) ([]domain.Category, error) {
	if !categoryType.Valid() {
		return nil, fmt.Errorf("%w: category type must be income or expense", apperrors.ErrValidation)
	}
	return s.categoryRepo.ListCategories(ctx, &categoryType)
}
