package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lokiverse2468/Ailoitte/internal/models"
)

type CreateCategoryInput struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// CreateCategory is the handler for POST /api/categories (admin only).
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.Store.CreateCategory(c.Request.Context(), &models.Category{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respondStoreError(c, err, "Category not found")
		return
	}

	respondOK(c, http.StatusCreated, "Category created successfully", gin.H{"category": category})
}

// GetAllCategories is the handler for GET /api/categories (public).
func (h *Handlers) GetAllCategories(c *gin.Context) {
	categories, err := h.Store.Categories(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Category not found")
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{"categories": categories})
}

// GetCategoryByID is the handler for GET /api/categories/:id (public).
func (h *Handlers) GetCategoryByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	category, err := h.Store.CategoryByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Category not found")
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{"category": category})
}

// UpdateCategory is the handler for PUT /api/categories/:id (admin only).
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var input UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.Store.CategoryByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Category not found")
		return
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = input.Description
	}

	updated, err := h.Store.UpdateCategory(c.Request.Context(), category)
	if err != nil {
		respondStoreError(c, err, "Category not found")
		return
	}

	respondOK(c, http.StatusOK, "Category updated successfully", gin.H{"category": updated})
}

// DeleteCategory is the handler for DELETE /api/categories/:id (admin only).
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.Store.DeleteCategory(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Category not found")
		return
	}

	respondOK(c, http.StatusOK, "Category deleted successfully", nil)
}
