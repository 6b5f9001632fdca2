package services

import (
	"context"

	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	"github.com/cajachoca/cajachoca_backend/internal/dto"
)

// CategorySvcFacade is the category registry.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID int64, req dto.UpdateCategoryRequest) (*domain.Category, error)
	// DeleteCategory soft-deactivates; the category stays resolvable on
	// historical transactions.
	DeleteCategory(ctx context.Context, categoryID int64) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListCategoriesByType(ctx context.Context, categoryType domain.CategoryType) ([]domain.Category, error)
}
