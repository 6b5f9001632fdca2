package mapping

import (
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	"github.com/cajachoca/cajachoca_backend/internal/models"
)

// ToDomainCategory converts a persistence category into its domain counterpart.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:   m.CategoryID,
		Name:         m.Name,
		CategoryType: domain.CategoryType(m.CategoryType),
		IsActive:     m.IsActive,
	}
}

// ToDomainCategorySlice converts a slice of persistence categories.
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	out := make([]domain.Category, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCategory(m)
	}
	return out
}
