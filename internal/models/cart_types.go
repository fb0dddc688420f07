package models

import "time"

// CartItem defines the struct for the 'cart_items' table. At most one row
// exists per (user, product); repeated adds merge into it. PriceAtAdded is
// the product price snapshotted at add time and refreshed on every merge.
type CartItem struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	ProductID    int64     `json:"productId" db:"product_id"`
	Quantity     int       `json:"quantity" db:"quantity"`
	PriceAtAdded float64   `json:"priceAtAdded" db:"price_at_added"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// CartProduct is the product view joined onto cart rows.
type CartProduct struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Description string  `json:"description,omitempty"`
}

// CartItemDetail is a cart row with its product loaded. Product is nil when
// the product was deleted after the item was added.
type CartItemDetail struct {
	CartItem
	Product *CartProduct `json:"product"`
}
