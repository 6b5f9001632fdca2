package handlers

import (
	"log/slog"
	"net/http"

	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	portssvc "github.com/cajachoca/cajachoca_backend/internal/core/ports/services"
	"github.com/cajachoca/cajachoca_backend/internal/dto"
	"github.com/cajachoca/cajachoca_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// categoryHandler handles HTTP requests for the category registry.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func newCategoryHandler(cs portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{categoryService: cs}
}

// registerCategoryRoutes registers all category-related routes.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newCategoryHandler(categoryService)

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.PUT("/:id", h.updateCategory)
		categories.DELETE("/:id", h.deleteCategory)
	}
}

// createCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid input or duplicate name"
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create category request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request format: "+err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Failed to create category", slog.String("name", req.Name), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Category created", slog.Int64("category_id", category.CategoryID), slog.String("name", category.Name))
	c.JSON(http.StatusCreated, dto.OK(category))
}

// listCategories godoc
// @Summary List active categories
// @Description Lists active categories, optionally filtered by type. Deactivated categories never appear.
// @Tags categories
// @Produce  json
// @Param   type query string false "Filter by type (income or expense)"
// @Success 200 {object} dto.ListResponse
// @Failure 400 {object} dto.ListResponse "Invalid type filter"
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var (
		categories []domain.Category
		err        error
	)
	if raw := c.Query("type"); raw != "" {
		categoryType := domain.CategoryType(raw)
		if !categoryType.Valid() {
			c.JSON(http.StatusBadRequest, dto.ListFail("invalid type filter: "+raw))
			return
		}
		categories, err = h.categoryService.ListCategoriesByType(c.Request.Context(), categoryType)
	} else {
		categories, err = h.categoryService.ListCategories(c.Request.Context())
	}
	if err != nil {
		logger.Error("Failed to list categories", slog.String("error", err.Error()))
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListOK(categories, int64(len(categories))))
}

// updateCategory godoc
// @Summary Rename a category
// @Description Renames a category. The type is immutable.
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   id path int true "Category ID"
// @Param   category body dto.UpdateCategoryRequest true "New name"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid input or duplicate name"
// @Failure 404 {object} dto.Response "Category not found"
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categoryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update category request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request format: "+err.Error()))
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), categoryID, req)
	if err != nil {
		logger.Warn("Failed to update category", slog.Int64("category_id", categoryID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Category renamed", slog.Int64("category_id", categoryID), slog.String("name", category.Name))
	c.JSON(http.StatusOK, dto.OK(category))
}

// deleteCategory godoc
// @Summary Deactivate a category
// @Description Soft-deletes a category. Historical transactions keep their classification.
// @Tags categories
// @Produce  json
// @Param   id path int true "Category ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response "Category not found"
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categoryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		logger.Warn("Failed to deactivate category", slog.Int64("category_id", categoryID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Category deactivated", slog.Int64("category_id", categoryID))
	c.JSON(http.StatusOK, dto.OK(true))
}
