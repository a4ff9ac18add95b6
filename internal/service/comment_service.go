package service

import (
	"context"

	"go-blog-app/internal/data"
	"go-blog-app/internal/policy"
)

// CommentService provides the business logic for commenting on posts.
// Anonymous viewers are denied every comment action with a not-found
// answer, and a non-owner can never edit or delete someone else's comment.
type CommentService struct {
	comments CommentRepository
	posts    PostRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments CommentRepository, posts PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// AddComment stores a new comment under the given post and returns the
// destination to redirect to (the post's detail page).
func (s *CommentService) AddComment(ctx context.Context, viewer policy.Viewer, postID int64, text string) (string, error) {
	if policy.AuthorizeComment(viewer, nil, policy.ActionCreate) != policy.Allow {
		return "", ErrNotFound
	}
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if notFound(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	comment := &data.Comment{
		Text:        text,
		AuthorID:    viewer.UserID,
		PostID:      postID,
		IsPublished: true,
	}
	if _, err := s.comments.CreateComment(ctx, comment); err != nil {
		return "", err
	}
	return policy.ResolveCommentDestination(postID), nil
}

// GetCommentForEdit fetches a comment for the edit form, applying the same
// ownership decision as the save itself.
func (s *CommentService) GetCommentForEdit(ctx context.Context, viewer policy.Viewer, postID, commentID int64) (*data.Comment, error) {
	return s.authorizedComment(ctx, viewer, postID, commentID, policy.ActionEdit)
}

// UpdateComment replaces the text of an existing comment and returns the
// destination to redirect to.
func (s *CommentService) UpdateComment(ctx context.Context, viewer policy.Viewer, postID, commentID int64, text string) (string, error) {
	comment, err := s.authorizedComment(ctx, viewer, postID, commentID, policy.ActionEdit)
	if err != nil {
		return "", err
	}
	comment.Text = text
	if err := s.comments.UpdateComment(ctx, comment); err != nil {
		return "", err
	}
	return policy.ResolveCommentDestination(postID), nil
}

// DeleteComment removes an existing comment and returns the destination to
// redirect to.
func (s *CommentService) DeleteComment(ctx context.Context, viewer policy.Viewer, postID, commentID int64) (string, error) {
	comment, err := s.authorizedComment(ctx, viewer, postID, commentID, policy.ActionDelete)
	if err != nil {
		return "", err
	}
	if err := s.comments.DeleteComment(ctx, comment.ID); err != nil {
		return "", err
	}
	return policy.ResolveCommentDestination(postID), nil
}

// authorizedComment fetches a comment and checks the viewer may act on it.
// A comment that is absent, attached to a different post, or owned by
// someone else all produce the same not-found answer.
func (s *CommentService) authorizedComment(ctx context.Context, viewer policy.Viewer, postID, commentID int64, action policy.Action) (*data.Comment, error) {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comment.PostID != postID {
		return nil, ErrNotFound
	}
	if policy.AuthorizeComment(viewer, comment, action) != policy.Allow {
		return nil, ErrNotFound
	}
	return comment, nil
}
