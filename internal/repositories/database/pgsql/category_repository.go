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

const categoryColumns = `category_id, name, category_type, is_active`

// PgxCategoryRepository persists transaction categories.
type PgxCategoryRepository struct {
	BaseRepository
}

// NewCategoryRepository creates a new repository for category data.
func NewCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

// SaveCategory inserts a new active category. The unique index on
// (lower(name), category_type) rejects duplicates regardless of casing.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, name string, categoryType domain.CategoryType) (*domain.Category, error) {
	query := `
		INSERT INTO categories (name, category_type, is_active)
		VALUES ($1, $2, TRUE)
		RETURNING ` + categoryColumns + `;
	`

	var m models.Category
	err := r.Pool.QueryRow(ctx, query, name, string(categoryType)).Scan(
		&m.CategoryID,
		&m.Name,
		&m.CategoryType,
		&m.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category %q already exists for type %s", apperrors.ErrValidation, name, categoryType)
		}
		return nil, apperrors.NewAppError(500, "failed to insert category", err)
	}

	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// FindCategoryByID retrieves a category by its ID, active or not.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	var m models.Category
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(
		&m.CategoryID,
		&m.Name,
		&m.CategoryType,
		&m.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %d", apperrors.ErrNotFound, categoryID)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find category %d", categoryID), err)
	}

	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// RenameCategory updates the display name of a category. The type is fixed
// at creation.
func (r *PgxCategoryRepository) RenameCategory(ctx context.Context, categoryID int64, name string) (*domain.Category, error) {
	query := `
		UPDATE categories
		SET name = $2
		WHERE category_id = $1
		RETURNING ` + categoryColumns + `;
	`

	var m models.Category
	err := r.Pool.QueryRow(ctx, query, categoryID, name).Scan(
		&m.CategoryID,
		&m.Name,
		&m.CategoryType,
		&m.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %d", apperrors.ErrNotFound, categoryID)
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category %q already exists", apperrors.ErrValidation, name)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to rename category %d", categoryID), err)
	}

	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// DeactivateCategory soft-deletes a category. Historical transactions keep
// pointing at the row.
func (r *PgxCategoryRepository) DeactivateCategory(ctx context.Context, categoryID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE categories SET is_active = FALSE WHERE category_id = $1;`, categoryID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to deactivate category %d", categoryID), err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %d", apperrors.ErrNotFound, categoryID)
	}
	return nil
}

// ListCategories returns active categories, optionally filtered by type,
// ordered by insertion so the seeded defaults come first.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, categoryType *domain.CategoryType) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE is_active`
	args := []any{}
	if categoryType != nil {
		args = append(args, string(*categoryType))
		query += ` AND category_type = $1`
	}
	query += ` ORDER BY category_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var m models.Category
		if err := rows.Scan(&m.CategoryID, &m.Name, &m.CategoryType, &m.IsActive); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		categories = append(categories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows", err)
	}

	return mapping.ToDomainCategorySlice(categories), nil
}
