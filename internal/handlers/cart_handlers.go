package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lokiverse2468/Ailoitte/internal/models"
)

type AddToCartInput struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"omitempty,gte=1"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

// AddToCart is the handler for POST /api/cart. Adding a product already in
// the cart merges quantities instead of creating a second row.
func (h *Handlers) AddToCart(c *gin.Context) {
	userID, _ := identity(c)

	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	item, created, err := h.Store.AddToCart(c.Request.Context(), userID, input.ProductID, input.Quantity)
	if err != nil {
		respondStoreError(c, err, "Product not found")
		return
	}

	if created {
		respondOK(c, http.StatusCreated, "Item added to cart successfully", gin.H{"cartItem": item})
		return
	}
	respondOK(c, http.StatusOK, "Cart updated successfully", gin.H{"cartItem": item})
}

// GetCart is the handler for GET /api/cart. The total is computed from the
// captured priceAtAdded of each line, not the live product price.
func (h *Handlers) GetCart(c *gin.Context) {
	userID, _ := identity(c)

	items, err := h.Store.CartItems(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err, "Cart item not found")
		return
	}

	var total float64
	for _, item := range items {
		total += item.PriceAtAdded * float64(item.Quantity)
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"cartItems": items,
		"total":     models.Round2(total),
		"itemCount": len(items),
	})
}

// UpdateCartItem is the handler for PUT /api/cart/:itemId.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	userID, _ := identity(c)

	itemID, ok := pathID(c, "itemId")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.Store.UpdateCartItem(c.Request.Context(), userID, itemID, input.Quantity)
	if err != nil {
		respondStoreError(c, err, "Cart item not found")
		return
	}

	respondOK(c, http.StatusOK, "Cart item updated successfully", gin.H{"cartItem": item})
}

// RemoveFromCart is the handler for DELETE /api/cart/:itemId.
func (h *Handlers) RemoveFromCart(c *gin.Context) {
	userID, _ := identity(c)

	itemID, ok := pathID(c, "itemId")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	if err := h.Store.RemoveCartItem(c.Request.Context(), userID, itemID); err != nil {
		respondStoreError(c, err, "Cart item not found")
		return
	}

	respondOK(c, http.StatusOK, "Item removed from cart successfully", nil)
}

// ClearCart is the handler for DELETE /api/cart.
func (h *Handlers) ClearCart(c *gin.Context) {
	userID, _ := identity(c)

	if err := h.Store.ClearCart(c.Request.Context(), userID); err != nil {
		respondStoreError(c, err, "Cart item not found")
		return
	}

	respondOK(c, http.StatusOK, "Cart cleared successfully", nil)
}
