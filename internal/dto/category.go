package dto

import "github.com/cajachoca/cajachoca_backend/internal/core/domain"

// CreateCategoryRequest creates a new classification tag.
type CreateCategoryRequest struct {
	Name         string              `json:"name" binding:"required"`
	CategoryType domain.CategoryType `json:"categoryType" binding:"required"`
}

// UpdateCategoryRequest renames a category. The type is immutable: changing
// it would silently reclassify historical transactions.
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
