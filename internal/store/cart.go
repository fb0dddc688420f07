package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lokiverse2468/Ailoitte/internal/models"
)

const cartItemJoin = `
	SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.price_at_added,
	       ci.created_at, ci.updated_at,
	       p.id, p.name, p.price, p.stock, p.image_url, p.description
	FROM cart_items ci
	LEFT JOIN products p ON ci.product_id = p.id`

// AddToCart merges the requested quantity into the user's existing row for
// the same product, or inserts a new one. The combined quantity is validated
// against the live stock as a single check, and the price snapshot is
// refreshed to the product's current price either way. The second return
// value is true when a new row was created.
func (s *SQLStore) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*models.CartItemDetail, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	var price float64
	var stock int
	err = tx.QueryRowContext(ctx,
		"SELECT price, stock FROM products WHERE id = ? FOR UPDATE", productID).
		Scan(&price, &stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	var itemID int64
	var existingQty int
	err = tx.QueryRowContext(ctx,
		"SELECT id, quantity FROM cart_items WHERE user_id = ? AND product_id = ? FOR UPDATE",
		userID, productID).
		Scan(&itemID, &existingQty)
	created := errors.Is(err, sql.ErrNoRows)
	if err != nil && !created {
		return nil, false, err
	}

	newQuantity := quantity + existingQty
	if stock < newQuantity {
		return nil, false, &InsufficientStockError{Available: stock}
	}

	now := time.Now()
	if created {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (user_id, product_id, quantity, price_at_added, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			userID, productID, newQuantity, price, now, now)
		if err != nil {
			return nil, false, err
		}
		itemID, err = result.LastInsertId()
		if err != nil {
			return nil, false, err
		}
	} else {
		_, err := tx.ExecContext(ctx, `
			UPDATE cart_items
			SET quantity = ?, price_at_added = ?, updated_at = ?
			WHERE id = ?`,
			newQuantity, price, now, itemID)
		if err != nil {
			return nil, false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}

	item, err := s.cartItemByID(ctx, itemID)
	return item, created, err
}

func (s *SQLStore) CartItems(ctx context.Context, userID int64) ([]models.CartItemDetail, error) {
	rows, err := s.db.QueryContext(ctx, cartItemJoin+`
		WHERE ci.user_id = ?
		ORDER BY ci.created_at DESC, ci.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItemDetail{}
	for rows.Next() {
		item, err := scanCartItemDetail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateCartItem replaces the item's quantity after re-reading the product's
// live stock. Stock is never cached across calls.
func (s *SQLStore) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) (*models.CartItemDetail, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var productID int64
	err = tx.QueryRowContext(ctx,
		"SELECT product_id FROM cart_items WHERE id = ? AND user_id = ? FOR UPDATE",
		itemID, userID).Scan(&productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var stock int
	err = tx.QueryRowContext(ctx,
		"SELECT stock FROM products WHERE id = ? FOR UPDATE", productID).Scan(&stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &ProductGoneError{ProductID: productID}
		}
		return nil, err
	}
	if stock < quantity {
		return nil, &InsufficientStockError{Available: stock}
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE cart_items SET quantity = ?, updated_at = ? WHERE id = ?",
		quantity, time.Now(), itemID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.cartItemByID(ctx, itemID)
}

func (s *SQLStore) RemoveCartItem(ctx context.Context, userID, itemID int64) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE id = ? AND user_id = ?", itemID, userID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) ClearCart(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = ?", userID)
	return err
}

func (s *SQLStore) cartItemByID(ctx context.Context, itemID int64) (*models.CartItemDetail, error) {
	item, err := scanCartItemDetail(s.db.QueryRowContext(ctx, cartItemJoin+" WHERE ci.id = ?", itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func scanCartItemDetail(row scanner) (*models.CartItemDetail, error) {
	var item models.CartItemDetail
	var prodID sql.NullInt64
	var prodName, prodDesc sql.NullString
	var prodPrice sql.NullFloat64
	var prodStock sql.NullInt64
	var prodImage *string

	err := row.Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.PriceAtAdded,
		&item.CreatedAt, &item.UpdatedAt,
		&prodID, &prodName, &prodPrice, &prodStock, &prodImage, &prodDesc,
	)
	if err != nil {
		return nil, err
	}

	if prodID.Valid {
		item.Product = &models.CartProduct{
			ID:          prodID.Int64,
			Name:        prodName.String,
			Price:       prodPrice.Float64,
			Stock:       int(prodStock.Int64),
			ImageURL:    prodImage,
			Description: prodDesc.String,
		}
	}
	return &item, nil
}
