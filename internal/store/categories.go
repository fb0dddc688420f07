package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gosimple/slug"

	"github.com/lokiverse2468/Ailoitte/internal/models"
)

func (s *SQLStore) CreateCategory(ctx context.Context, cat *models.Category) (*models.Category, error) {
	now := time.Now()

	query := `
		INSERT INTO categories (name, slug, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query, cat.Name, slug.Make(cat.Name), cat.Description, now, now)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.CategoryByID(ctx, id)
}

func (s *SQLStore) Categories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, slug, description, created_at, updated_at
		FROM categories
		ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *SQLStore) CategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug, description, created_at, updated_at
		FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *SQLStore) UpdateCategory(ctx context.Context, cat *models.Category) (*models.Category, error) {
	query := `
		UPDATE categories
		SET name = ?, slug = ?, description = ?, updated_at = ?
		WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, cat.Name, slug.Make(cat.Name), cat.Description, time.Now(), cat.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}

	if n, _ := result.RowsAffected(); n == 0 {
		// Zero rows can also mean a no-op update; confirm existence below.
		if _, err := s.CategoryByID(ctx, cat.ID); err != nil {
			return nil, err
		}
	}
	return s.CategoryByID(ctx, cat.ID)
}

func (s *SQLStore) DeleteCategory(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
