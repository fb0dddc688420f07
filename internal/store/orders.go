package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lokiverse2468/Ailoitte/internal/models"
)

// orderLine is the slice of a locked cart row needed to build the order.
type orderLine struct {
	productID    int64
	quantity     int
	priceAtAdded float64
}

// PlaceOrder converts the user's cart into an order as one serializable
// transaction: validate every cart row against live stock, insert the order
// and its items with the add-time price snapshots, decrement stock, and clear
// the cart. Any failure rolls the whole sequence back, so a created order
// always has its stock deducted and its cart emptied.
func (s *SQLStore) PlaceOrder(ctx context.Context, userID int64) (*models.OrderDetail, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Lock the cart rows and their product rows so concurrent checkouts of
	// the same product serialize on the stock check. Deterministic order
	// keeps lock acquisition consistent across transactions.
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity, ci.price_at_added, p.id, p.name, p.stock
		FROM cart_items ci
		LEFT JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = ?
		ORDER BY ci.product_id
		FOR UPDATE`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []orderLine
	var totalAmount float64

	for rows.Next() {
		var line orderLine
		var prodID sql.NullInt64
		var prodName sql.NullString
		var prodStock sql.NullInt64

		if err := rows.Scan(&line.productID, &line.quantity, &line.priceAtAdded,
			&prodID, &prodName, &prodStock); err != nil {
			return nil, err
		}

		if !prodID.Valid {
			return nil, &ProductGoneError{ProductID: line.productID}
		}
		if line.quantity > int(prodStock.Int64) {
			return nil, &InsufficientStockError{
				ProductName: prodName.String,
				Available:   int(prodStock.Int64),
			}
		}

		totalAmount += line.priceAtAdded * float64(line.quantity)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	totalAmount = models.Round2(totalAmount)

	now := time.Now()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (user_id, total_amount, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		userID, totalAmount, models.StatusPending, now, now)
	if err != nil {
		return nil, err
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_at_order, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			orderID, line.productID, line.quantity, line.priceAtAdded, now)
		if err != nil {
			return nil, err
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE products SET stock = stock - ?, updated_at = ? WHERE id = ?",
			line.quantity, now, line.productID)
		if err != nil {
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = ?", userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.orderDetail(ctx, orderID, false)
}

// OrdersByUser returns one page of the user's orders, newest first.
func (s *SQLStore) OrdersByUser(ctx context.Context, userID int64, page, limit int) ([]models.OrderDetail, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE user_id = ?", userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	page, limit = NormalizePage(page, limit)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, total_amount, status, created_at, updated_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := s.collectOrders(ctx, rows)
	return orders, total, err
}

// OrderByID returns the order when owned by userID, or unconditionally when
// isAdmin is set. Anything else is reported as not-found so non-owners learn
// nothing about the order's existence.
func (s *SQLStore) OrderByID(ctx context.Context, orderID, userID int64, isAdmin bool) (*models.OrderDetail, error) {
	query := "SELECT user_id FROM orders WHERE id = ?"
	args := []any{orderID}
	if !isAdmin {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	var ownerID int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.orderDetail(ctx, orderID, true)
}

func (s *SQLStore) AllOrders(ctx context.Context, page, limit int, status *models.OrderStatus) ([]models.OrderDetail, int, error) {
	where := ""
	args := []any{}
	if status != nil {
		where = " WHERE o.status = ?"
		args = append(args, *status)
	}

	var total int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders o"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	page, limit = NormalizePage(page, limit)
	query := `
		SELECT o.id, o.user_id, o.total_amount, o.status, o.created_at, o.updated_at,
		       u.id, u.email
		FROM orders o
		JOIN users u ON o.user_id = u.id` + where + `
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.OrderDetail{}
	for rows.Next() {
		var o models.OrderDetail
		var u models.UserSummary
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status,
			&o.CreatedAt, &o.UpdatedAt, &u.ID, &u.Email); err != nil {
			return nil, 0, err
		}
		o.User = &u
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		items, err := s.orderItems(ctx, orders[i].ID, false)
		if err != nil {
			return nil, 0, err
		}
		orders[i].Items = items
	}
	return orders, total, nil
}

// UpdateOrderStatus applies a status change after checking the transition
// table. The enum itself is validated at the HTTP boundary; this guards the
// lifecycle.
func (s *SQLStore) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.OrderDetail, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current models.OrderStatus
	err = tx.QueryRowContext(ctx,
		"SELECT status FROM orders WHERE id = ? FOR UPDATE", orderID).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !current.CanTransitionTo(status) {
		return nil, &InvalidTransitionError{From: current, To: status}
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE orders SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now(), orderID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.orderDetail(ctx, orderID, false)
}

// orderDetail loads one composed order view: the order row, its items, and
// product summaries (nil for since-deleted products). The single-order view
// carries the product description; list views leave it out.
func (s *SQLStore) orderDetail(ctx context.Context, orderID int64, withDescription bool) (*models.OrderDetail, error) {
	var o models.OrderDetail

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, total_amount, status, created_at, updated_at
		FROM orders
		WHERE id = ?`, orderID).
		Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := s.orderItems(ctx, orderID, withDescription)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (s *SQLStore) orderItems(ctx context.Context, orderID int64, withDescription bool) ([]models.OrderItemDetail, error) {
	columns := "oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price_at_order, oi.created_at, p.id, p.name, p.image_url"
	if withDescription {
		columns += ", p.description"
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+columns+`
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = ?
		ORDER BY oi.id ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItemDetail{}
	for rows.Next() {
		var item models.OrderItemDetail
		var prodID sql.NullInt64
		var prodName, prodDesc sql.NullString
		var prodImage *string

		dest := []any{&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.PriceAtOrder, &item.CreatedAt, &prodID, &prodName, &prodImage}
		if withDescription {
			dest = append(dest, &prodDesc)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if prodID.Valid {
			item.Product = &models.ProductSummary{
				ID:       prodID.Int64,
				Name:     prodName.String,
				ImageURL: prodImage,
			}
			if prodDesc.Valid {
				item.Product.Description = &prodDesc.String
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// collectOrders scans plain order rows and attaches their items. Admin
// listings join the owner themselves and do not come through here.
func (s *SQLStore) collectOrders(ctx context.Context, rows *sql.Rows) ([]models.OrderDetail, error) {
	orders := []models.OrderDetail{}
	for rows.Next() {
		var o models.OrderDetail
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range orders {
		items, err := s.orderItems(ctx, orders[i].ID, false)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}
