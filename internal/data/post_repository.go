package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLPostRepository is a concrete implementation of the PostRepository
// interface using sqlx.
type SQLPostRepository struct {
	db *sqlx.DB
}

// NewSQLPostRepository creates a new SQLPostRepository.
func NewSQLPostRepository(db *sqlx.DB) *SQLPostRepository {
	return &SQLPostRepository{db: db}
}

// selectPosts is the shared projection for all post reads. The author is
// always joined; category and location are left-joined because both foreign
// keys are nullable (SET NULL on delete).
const selectPosts = `
SELECT p.id, p.title, p.text, p.pub_date, p.author_id, p.category_id, p.location_id,
       p.image_path, p.is_published, p.created_at,
       u.username AS author_username,
       (SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id AND cm.is_published = 1) AS comment_count,
       c.title AS cat_title, c.description AS cat_description, c.slug AS cat_slug, c.is_published AS cat_is_published,
       l.name AS loc_name, l.is_published AS loc_is_published
FROM posts p
JOIN users u ON u.id = p.author_id
LEFT JOIN categories c ON c.id = p.category_id
LEFT JOIN locations l ON l.id = p.location_id`

// postRow carries the nullable columns of the left-joined category and
// location alongside the post itself.
type postRow struct {
	Post
	CatTitle       sql.NullString `db:"cat_title"`
	CatDescription sql.NullString `db:"cat_description"`
	CatSlug        sql.NullString `db:"cat_slug"`
	CatIsPublished sql.NullBool   `db:"cat_is_published"`
	LocName        sql.NullString `db:"loc_name"`
	LocIsPublished sql.NullBool   `db:"loc_is_published"`
}

func (r postRow) toPost() *Post {
	post := r.Post
	if post.CategoryID != nil && r.CatTitle.Valid {
		post.Category = &Category{
			ID:          *post.CategoryID,
			Title:       r.CatTitle.String,
			Description: r.CatDescription.String,
			Slug:        r.CatSlug.String,
			IsPublished: r.CatIsPublished.Bool,
		}
	}
	if post.LocationID != nil && r.LocName.Valid {
		post.Location = &Location{
			ID:          *post.LocationID,
			Name:        r.LocName.String,
			IsPublished: r.LocIsPublished.Bool,
		}
	}
	return &post
}

// CreatePost inserts a new post and returns its generated ID.
func (r *SQLPostRepository) CreatePost(ctx context.Context, post *Post) (int64, error) {
	query := `INSERT INTO posts (title, text, pub_date, author_id, category_id, location_id, image_path, is_published)
	          VALUES (:title, :text, :pub_date, :author_id, :category_id, :location_id, :image_path, :is_published)`
	res, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return 0, fmt.Errorf("failed to execute create post query: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted post id: %w", err)
	}
	post.ID = id
	return id, nil
}

// GetPostByID retrieves a single post by its ID, with its author, category
// and location joined in.
func (r *SQLPostRepository) GetPostByID(ctx context.Context, id int64) (*Post, error) {
	var row postRow
	query := selectPosts + ` WHERE p.id = ?`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return row.toPost(), nil
}

// UpdatePost updates an existing post.
func (r *SQLPostRepository) UpdatePost(ctx context.Context, post *Post) error {
	query := `UPDATE posts SET title = :title, text = :text, pub_date = :pub_date,
	          category_id = :category_id, location_id = :location_id,
	          image_path = :image_path, is_published = :is_published
	          WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post %d: %w", post.ID, ErrNotFound)
	}
	return nil
}

// DeletePost removes a post by its ID. Comments are removed by the
// ON DELETE CASCADE constraint.
func (r *SQLPostRepository) DeletePost(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListAll retrieves every post in insertion order. Visibility filtering and
// ordering for display are applied by the policy layer, not here.
func (r *SQLPostRepository) ListAll(ctx context.Context) ([]*Post, error) {
	return r.list(ctx, selectPosts+` ORDER BY p.id`)
}

// ListByAuthor retrieves every post by the given author in insertion order.
func (r *SQLPostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*Post, error) {
	return r.list(ctx, selectPosts+` WHERE p.author_id = ? ORDER BY p.id`, authorID)
}

// ListByCategory retrieves every post in the given category in insertion order.
func (r *SQLPostRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*Post, error) {
	return r.list(ctx, selectPosts+` WHERE p.category_id = ? ORDER BY p.id`, categoryID)
}

func (r *SQLPostRepository) list(ctx context.Context, query string, args ...interface{}) ([]*Post, error) {
	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	posts := make([]*Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toPost()
	}
	return posts, nil
}
