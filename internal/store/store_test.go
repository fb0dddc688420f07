package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lokiverse2468/Ailoitte/internal/models"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{1, 10, 1, 10},
		{0, 0, 1, 10},
		{-3, -1, 1, 10},
		{2, 25, 2, 25},
		{1, 100, 1, 100},
		{1, 101, 1, 100},
		{1, 1000, 1, 100},
	}

	for _, tc := range tests {
		page, limit := NormalizePage(tc.page, tc.limit)
		assert.Equal(t, tc.wantPage, page, "page for (%d, %d)", tc.page, tc.limit)
		assert.Equal(t, tc.wantLimit, limit, "limit for (%d, %d)", tc.page, tc.limit)
	}
}

func TestInsufficientStockErrorMessages(t *testing.T) {
	withName := &InsufficientStockError{ProductName: "Widget", Available: 3}
	assert.Equal(t, "Insufficient stock for Widget. Only 3 items available", withName.Error())

	withoutName := &InsufficientStockError{Available: 10}
	assert.Equal(t, "Insufficient stock. Only 10 items available", withoutName.Error())
}

func TestProductGoneErrorMessage(t *testing.T) {
	err := &ProductGoneError{ProductID: 42}
	assert.Equal(t, "Product with ID 42 no longer exists", err.Error())
}

func TestInvalidTransitionErrorMessage(t *testing.T) {
	err := &InvalidTransitionError{From: models.StatusDelivered, To: models.StatusPending}
	assert.Equal(t, "Cannot change order status from delivered to pending", err.Error())
}
