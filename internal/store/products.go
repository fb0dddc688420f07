package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lokiverse2468/Ailoitte/internal/models"
)

const productColumns = "p.id, p.name, p.description, p.price, p.stock, p.category_id, p.image_url, p.created_at, p.updated_at"

func (s *SQLStore) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	now := time.Now()

	query := `
		INSERT INTO products (name, description, price, stock, category_id, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, p.Stock, p.CategoryID, p.ImageURL, now, now)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.ProductByID(ctx, id)
}

// Products returns one page of the catalog, newest first, with the total row
// count for the pagination envelope.
func (s *SQLStore) Products(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error) {
	where := []string{"1=1"}
	args := []any{}

	if filter.MinPrice != nil {
		where = append(where, "p.price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		where = append(where, "p.price <= ?")
		args = append(args, *filter.MaxPrice)
	}
	if filter.CategoryID != nil {
		where = append(where, "p.category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.Search != "" {
		where = append(where, "p.name LIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM products p WHERE " + whereClause
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, limit := NormalizePage(filter.Page, filter.Limit)
	query := `
		SELECT ` + productColumns + `, c.id, c.name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE ` + whereClause + `
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProductWithCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (s *SQLStore) ProductByID(ctx context.Context, id int64) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`, c.id, c.name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = ?`, id)

	p, err := scanProductWithCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *SQLStore) UpdateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, stock = ?, category_id = ?, image_url = ?, updated_at = ?
		WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, p.Stock, p.CategoryID, p.ImageURL, time.Now(), p.ID)
	if err != nil {
		return nil, err
	}
	return s.ProductByID(ctx, p.ID)
}

func (s *SQLStore) DeleteProduct(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner lets row and rows scanning share one helper.
type scanner interface {
	Scan(dest ...any) error
}

func scanProductWithCategory(row scanner) (*models.Product, error) {
	var p models.Product
	var catID sql.NullInt64
	var catName sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.CategoryID, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		&catID, &catName,
	)
	if err != nil {
		return nil, err
	}

	if catID.Valid {
		p.Category = &models.Category{ID: catID.Int64, Name: catName.String}
	}
	return &p, nil
}
