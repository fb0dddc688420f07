package database

import "database/sql"

// Migrate creates the schema if it does not exist yet. cart_items and
// order_items carry no foreign key on product_id: a product may be deleted
// while still referenced, which the order engine detects (dangling cart rows)
// and historical order views tolerate (nil product summary).
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role ENUM('admin','customer') NOT NULL DEFAULT 'customer',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			slug VARCHAR(255) NOT NULL,
			description TEXT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			price DECIMAL(10,2) NOT NULL,
			stock INT NOT NULL DEFAULT 0,
			category_id BIGINT NULL,
			image_url VARCHAR(1024) NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			CONSTRAINT fk_products_category FOREIGN KEY (category_id)
				REFERENCES categories(id) ON DELETE SET NULL,
			INDEX idx_products_category (category_id),
			INDEX idx_products_created (created_at)
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			quantity INT NOT NULL,
			price_at_added DECIMAL(10,2) NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			CONSTRAINT fk_cart_items_user FOREIGN KEY (user_id)
				REFERENCES users(id) ON DELETE CASCADE,
			UNIQUE KEY uq_cart_user_product (user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			total_amount DECIMAL(10,2) NOT NULL,
			status ENUM('pending','processing','shipped','delivered','cancelled')
				NOT NULL DEFAULT 'pending',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			CONSTRAINT fk_orders_user FOREIGN KEY (user_id)
				REFERENCES users(id),
			INDEX idx_orders_user_created (user_id, created_at),
			INDEX idx_orders_status (status)
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			order_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			quantity INT NOT NULL,
			price_at_order DECIMAL(10,2) NOT NULL,
			created_at DATETIME NOT NULL,
			CONSTRAINT fk_order_items_order FOREIGN KEY (order_id)
				REFERENCES orders(id) ON DELETE CASCADE,
			INDEX idx_order_items_order (order_id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
