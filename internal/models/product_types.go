package models

import "time"

// Product is the model for the 'products' table.
// Price is DECIMAL(10,2) in the database. Stock never goes negative: the
// only code path that decrements it re-checks availability under a row lock.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Stock       int       `json:"stock" db:"stock"`
	CategoryID  *int64    `json:"categoryId,omitempty" db:"category_id"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Joined, not a column.
	Category *Category `json:"category,omitempty" db:"-"`
}

// ProductSummary is the minimal product view embedded in order items.
// Description is populated only on the single-order view.
type ProductSummary struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ProductFilter narrows and pages the public product listing.
type ProductFilter struct {
	MinPrice   *float64
	MaxPrice   *float64
	CategoryID *int64
	Search     string
	Page       int
	Limit      int
}
