package repositories

import (
	"context"

	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
)

// CategoryRepositoryFacade defines persistence operations for categories.
type CategoryRepositoryFacade interface {
	// SaveCategory inserts an active category. A duplicate name within the
	// same type surfaces as apperrors.ErrValidation (unique index backstop).
	SaveCategory(ctx context.Context, name string, categoryType domain.CategoryType) (*domain.Category, error)

	// FindCategoryByID returns the category or apperrors.ErrNotFound.
	// Deactivated categories are still found so historical transactions
	// keep resolving.
	FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error)

	// RenameCategory changes the name only; the type is immutable.
	RenameCategory(ctx context.Context, categoryID int64, name string) (*domain.Category, error)

	// DeactivateCategory soft-deletes the category. Referencing
	// transactions are untouched.
	DeactivateCategory(ctx context.Context, categoryID int64) error

	// ListCategories returns active categories in creation order,
	// optionally narrowed to one type.
	ListCategories(ctx context.Context, categoryType *domain.CategoryType) ([]domain.Category, error)
}
