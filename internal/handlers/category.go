package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Collinul/home-task-management-sub001/internal/auth"
	"github.com/Collinul/home-task-management-sub001/internal/dto"
	"github.com/Collinul/home-task-management-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List godoc
// @Summary      List visible categories with task counts
// @Tags         categories
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListCategoriesResponse
// @Failure      500  {object}  map[string]string
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, dto.ListCategoriesResponse{Items: dto.FromCategoriesWithCounts(list)})
}

// Create godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateCategoryRequest  true  "Category body"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c),
		req.Name, req.Emoji, req.Color, req.HouseholdID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrHouseholdAccess):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateCategory):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.FromCategory(cat))
}

// Update godoc
// @Summary      Partially update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Category ID"
// @Param        body  body      dto.UpdateCategoryRequest  true  "Partial update"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /categories/{id} [patch]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, service.CategoryPatch{
		Name:  req.Name,
		Emoji: req.Emoji,
		Color: req.Color,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateCategory):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update category"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromCategory(cat))
}

// Delete godoc
// @Summary      Delete a category
// @Description  Refused while any task still references the category.
// @Tags         categories
// @Security     CookieAuth
// @Param        id   path  int  true  "Category ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, service.ErrCategoryInUse):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete category"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// Initialize godoc
// @Summary      Seed default categories for a scope
// @Description  Idempotent: a scope that already has categories is returned unchanged.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.InitializeCategoriesRequest  false  "Scope"
// @Success      200   {object}  dto.ListCategoriesResponse
// @Failure      403   {object}  map[string]string
// @Router       /categories/initialize [post]
func (h *CategoryHandler) Initialize(c *gin.Context) {
	var req dto.InitializeCategoriesRequest
	// Body is optional: no body means the personal scope.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list, err := h.svc.EnsureDefaults(c.Request.Context(), auth.UserIDFromContext(c), req.HouseholdID)
	if err != nil {
		if errors.Is(err, service.ErrHouseholdAccess) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize categories"})
		return
	}
	c.JSON(http.StatusOK, dto.ListCategoriesResponse{Items: dto.FromCategories(list)})
}
