package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CategoryRepository handles database operations for categories.
type CategoryRepository struct {
	DB *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// GetBySlug finds a category by its URL slug.
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	var category Category
	query := `SELECT id, title, description, slug, is_published, created_at FROM categories WHERE slug = ?`
	if err := r.DB.GetContext(ctx, &category, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}
	return &category, nil
}

// GetByID finds a category by its ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*Category, error) {
	var category Category
	query := `SELECT id, title, description, slug, is_published, created_at FROM categories WHERE id = ?`
	if err := r.DB.GetContext(ctx, &category, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}
	return &category, nil
}

// ListPublished retrieves all published categories ordered by title, for the
// post form's category picker.
func (r *CategoryRepository) ListPublished(ctx context.Context) ([]*Category, error) {
	var categories []*Category
	query := `SELECT id, title, description, slug, is_published, created_at FROM categories WHERE is_published = 1 ORDER BY title`
	if err := r.DB.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list published categories: %w", err)
	}
	return categories, nil
}

// Save creates a new category and returns its ID.
func (r *CategoryRepository) Save(ctx context.Context, category *Category) (int64, error) {
	query := `INSERT INTO categories (title, description, slug, is_published) VALUES (:title, :description, :slug, :is_published)`
	res, err := r.DB.NamedExecContext(ctx, query, category)
	if err != nil {
		return 0, fmt.Errorf("failed to save category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted category id: %w", err)
	}
	category.ID = id
	return id, nil
}
