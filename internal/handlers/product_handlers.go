package handlers

import (
	"context"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lokiverse2468/Ailoitte/internal/models"
	"github.com/lokiverse2468/Ailoitte/internal/store"
)

// Product create/update arrive as multipart forms so an image file can ride
// along with the fields.

type CreateProductInput struct {
	Name        string   `form:"name" binding:"required,max=255"`
	Description string   `form:"description"`
	Price       *float64 `form:"price" binding:"required,gte=0"`
	Stock       *int     `form:"stock" binding:"required,gte=0"`
	CategoryID  *int64   `form:"categoryId"`
}

type UpdateProductInput struct {
	Name        *string  `form:"name" binding:"omitempty,max=255"`
	Description *string  `form:"description"`
	Price       *float64 `form:"price" binding:"omitempty,gte=0"`
	Stock       *int     `form:"stock" binding:"omitempty,gte=0"`
	CategoryID  *int64   `form:"categoryId"`
}

// CreateProduct is the handler for POST /api/products (admin only).
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBind(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if input.CategoryID != nil {
		if _, err := h.Store.CategoryByID(c.Request.Context(), *input.CategoryID); err != nil {
			respondStoreError(c, err, "Category not found")
			return
		}
	}

	var imageURL *string
	if file, err := c.FormFile("image"); err == nil {
		url, err := h.uploadImage(c.Request.Context(), file)
		if err != nil {
			log.Printf("image upload failed: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to upload image")
			return
		}
		imageURL = &url
	}

	product, err := h.Store.CreateProduct(c.Request.Context(), &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       models.Round2(*input.Price),
		Stock:       *input.Stock,
		CategoryID:  input.CategoryID,
		ImageURL:    imageURL,
	})
	if err != nil {
		respondStoreError(c, err, "Product not found")
		return
	}

	respondOK(c, http.StatusCreated, "Product created successfully", gin.H{"product": product})
}

// GetAllProducts is the handler for GET /api/products (public).
// Supports minPrice, maxPrice, categoryId, search, page and limit.
func (h *Handlers) GetAllProducts(c *gin.Context) {
	filter := models.ProductFilter{
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	}

	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "minPrice must be a number")
			return
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "maxPrice must be a number")
			return
		}
		filter.MaxPrice = &v
	}
	if raw := c.Query("categoryId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "categoryId must be an integer")
			return
		}
		filter.CategoryID = &v
	}

	products, total, err := h.Store.Products(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, err, "Product not found")
		return
	}

	page, limit := store.NormalizePage(filter.Page, filter.Limit)
	respondPage(c, gin.H{"products": products}, page, limit, total)
}

// GetProductByID is the handler for GET /api/products/:id (public).
func (h *Handlers) GetProductByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.Store.ProductByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Product not found")
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{"product": product})
}

// UpdateProduct is the handler for PUT /api/products/:id (admin only).
// A replacement image deletes the old remote copy best-effort: a stale
// remote image is non-fatal.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBind(&input); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.Store.ProductByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Product not found")
		return
	}

	if input.CategoryID != nil {
		if _, err := h.Store.CategoryByID(c.Request.Context(), *input.CategoryID); err != nil {
			respondStoreError(c, err, "Category not found")
			return
		}
		product.CategoryID = input.CategoryID
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = models.Round2(*input.Price)
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if file, err := c.FormFile("image"); err == nil {
		if product.ImageURL != nil {
			if err := h.Uploader.Delete(c.Request.Context(), *product.ImageURL); err != nil {
				log.Printf("failed to delete old image %s: %v", *product.ImageURL, err)
			}
		}

		url, err := h.uploadImage(c.Request.Context(), file)
		if err != nil {
			log.Printf("image upload failed: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to upload image")
			return
		}
		product.ImageURL = &url
	}

	updated, err := h.Store.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		respondStoreError(c, err, "Product not found")
		return
	}

	respondOK(c, http.StatusOK, "Product updated successfully", gin.H{"product": updated})
}

// DeleteProduct is the handler for DELETE /api/products/:id (admin only).
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.Store.ProductByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "Product not found")
		return
	}

	if product.ImageURL != nil {
		if err := h.Uploader.Delete(c.Request.Context(), *product.ImageURL); err != nil {
			log.Printf("failed to delete image %s: %v", *product.ImageURL, err)
		}
	}

	if err := h.Store.DeleteProduct(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Product not found")
		return
	}

	respondOK(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *Handlers) uploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	return h.Uploader.Upload(ctx, data, file.Filename)
}
