package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLCommentRepository is a concrete implementation of the CommentRepository
// interface using sqlx.
type SQLCommentRepository struct {
	db *sqlx.DB
}

// NewSQLCommentRepository creates a new SQLCommentRepository.
func NewSQLCommentRepository(db *sqlx.DB) *SQLCommentRepository {
	return &SQLCommentRepository{db: db}
}

// CreateComment inserts a new comment and returns its generated ID.
func (r *SQLCommentRepository) CreateComment(ctx context.Context, comment *Comment) (int64, error) {
	query := `INSERT INTO comments (text, author_id, post_id, is_published) VALUES (:text, :author_id, :post_id, :is_published)`
	res, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return 0, fmt.Errorf("failed to execute create comment query: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted comment id: %w", err)
	}
	comment.ID = id
	return id, nil
}

// GetCommentByID retrieves a single comment by its ID.
func (r *SQLCommentRepository) GetCommentByID(ctx context.Context, id int64) (*Comment, error) {
	var comment Comment
	query := `SELECT c.id, c.text, c.author_id, c.post_id, c.is_published, c.created_at,
	          u.username AS author_username
	          FROM comments c JOIN users u ON u.id = c.author_id
	          WHERE c.id = ?`
	if err := r.db.GetContext(ctx, &comment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}
	return &comment, nil
}

// UpdateComment updates the text of an existing comment.
func (r *SQLCommentRepository) UpdateComment(ctx context.Context, comment *Comment) error {
	query := `UPDATE comments SET text = :text, is_published = :is_published WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("comment %d: %w", comment.ID, ErrNotFound)
	}
	return nil
}

// DeleteComment removes a comment by its ID.
func (r *SQLCommentRepository) DeleteComment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListPublishedByPost retrieves the published comments under a post, oldest
// first. Unpublished comments are filtered here because they are never shown
// to anyone; this is independent of the owning post's visibility.
func (r *SQLCommentRepository) ListPublishedByPost(ctx context.Context, postID int64) ([]*Comment, error) {
	var comments []*Comment
	query := `SELECT c.id, c.text, c.author_id, c.post_id, c.is_published, c.created_at,
	          u.username AS author_username
	          FROM comments c JOIN users u ON u.id = c.author_id
	          WHERE c.post_id = ? AND c.is_published = 1
	          ORDER BY c.created_at, c.id`
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list comments for post: %w", err)
	}
	return comments, nil
}
