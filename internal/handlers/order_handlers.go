package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lokiverse2468/Ailoitte/internal/models"
	"github.com/lokiverse2468/Ailoitte/internal/store"
)

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func invalidStatusMessage() string {
	names := make([]string, 0, len(models.OrderStatuses))
	for _, s := range models.OrderStatuses {
		names = append(names, string(s))
	}
	return fmt.Sprintf("Invalid status. Must be one of: %s", strings.Join(names, ", "))
}

// CreateOrder is the handler for POST /api/orders. The whole checkout runs
// as one transaction in the store; any failure leaves cart and stock
// untouched.
func (h *Handlers) CreateOrder(c *gin.Context) {
	userID, _ := identity(c)

	order, err := h.Store.PlaceOrder(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err, "Order not found")
		return
	}

	respondOK(c, http.StatusCreated, "Order placed successfully", gin.H{"order": order})
}

// GetMyOrders is the handler for GET /api/orders/my-orders.
func (h *Handlers) GetMyOrders(c *gin.Context) {
	userID, _ := identity(c)
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	orders, total, err := h.Store.OrdersByUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondStoreError(c, err, "Order not found")
		return
	}

	page, limit = store.NormalizePage(page, limit)
	respondPage(c, gin.H{"orders": orders}, page, limit, total)
}

// GetOrderByID is the handler for GET /api/orders/:id. Customers only see
// their own orders; someone else's order answers 404, never 403, so order
// IDs are not probeable.
func (h *Handlers) GetOrderByID(c *gin.Context) {
	userID, role := identity(c)

	orderID, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.Store.OrderByID(c.Request.Context(), orderID, userID, role.IsAdmin())
	if err != nil {
		respondStoreError(c, err, "Order not found")
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{"order": order})
}

// GetAllOrders is the handler for GET /api/orders (admin only). Accepts an
// optional status filter.
func (h *Handlers) GetAllOrders(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	var status *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		parsed, ok := models.ParseOrderStatus(raw)
		if !ok {
			respondError(c, http.StatusBadRequest, invalidStatusMessage())
			return
		}
		status = &parsed
	}

	orders, total, err := h.Store.AllOrders(c.Request.Context(), page, limit, status)
	if err != nil {
		respondStoreError(c, err, "Order not found")
		return
	}

	page, limit = store.NormalizePage(page, limit)
	respondPage(c, gin.H{"orders": orders}, page, limit, total)
}

// UpdateOrderStatus is the handler for PUT /api/orders/:id/status (admin
// only). The status must be in the closed enum before the store is
// consulted; the store then enforces the legal transition graph.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	status, ok := models.ParseOrderStatus(input.Status)
	if !ok {
		respondError(c, http.StatusBadRequest, invalidStatusMessage())
		return
	}

	order, err := h.Store.UpdateOrderStatus(c.Request.Context(), orderID, status)
	if err != nil {
		respondStoreError(c, err, "Order not found")
		return
	}

	respondOK(c, http.StatusOK, "Order status updated successfully", gin.H{"order": order})
}
