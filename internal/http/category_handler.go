package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/varejo/pos-service/internal/domain/dto"
	"github.com/varejo/pos-service/internal/i18n"
	"github.com/varejo/pos-service/internal/service"
)

// CategoryHandler provides HTTP handlers for category routes.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler instance.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory handles POST /api/categories requests.
//
// @Summary      Create category
// @Description  Registers a new product category with a unique name.
// @Tags         Categories
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.CategoryRequest true "Category name"
// @Success      201 {object} dto.SuccessResponse "Created category"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      409 {object} dto.ErrorResponse "Conflict - name already taken"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCategory) {
			builder.Error(http.StatusConflict, dto.ErrCodeConflict, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	audit(c, "create_category", "Category registered", map[string]interface{}{
		"category_id": category.ID.Hex(),
		"nome":        category.Name,
	})
	builder.SuccessCreated(category)
}

// ListCategories handles GET /api/categories requests.
//
// @Summary      List categories
// @Description  Lists active categories with the count of products in each.
// @Tags         Categories
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse "Categories with product counts"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	builder := NewResponseBuilder(c)

	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(categories)
}

// RenameCategory handles PUT /api/categories/:id requests.
//
// @Summary      Rename category
// @Description  Renames a category. The new name must be unique.
// @Tags         Categories
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Category id"
// @Param        request body dto.CategoryRequest true "New name"
// @Success      200 {object} dto.SuccessResponse "Updated category"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Category not found"
// @Failure      409 {object} dto.ErrorResponse "Conflict - name already taken"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) RenameCategory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	category, err := h.categoryService.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
		case errors.Is(err, service.ErrDuplicateCategory):
			builder.Error(http.StatusConflict, dto.ErrCodeConflict, err)
		default:
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}
	builder.SuccessOK(category)
}

// DeleteCategory handles DELETE /api/categories/:id requests.
//
// @Summary      Delete category
// @Description  Soft-deletes a category. Refused while any product still references it.
// @Tags         Categories
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Category id"
// @Success      200 {object} dto.SuccessResponse "Deleted"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Category not found"
// @Failure      409 {object} dto.ErrorResponse "Conflict - category still has products"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
		case errors.Is(err, service.ErrCategoryInUse):
			builder.Error(http.StatusConflict, i18n.ErrKeyCategoryInUse, err)
		default:
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}
	builder.SuccessOK(map[string]string{"id": id.Hex()})
}
