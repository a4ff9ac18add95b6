package service

import (
	"context"
	"errors"
	"time"

	"go-blog-app/internal/cache"
	"go-blog-app/internal/data"
	"go-blog-app/internal/pagination"
	"go-blog-app/internal/policy"
)

// PostRepository defines the interface for database operations on posts.
type PostRepository interface {
	CreatePost(ctx context.Context, post *data.Post) (int64, error)
	GetPostByID(ctx context.Context, id int64) (*data.Post, error)
	UpdatePost(ctx context.Context, post *data.Post) error
	DeletePost(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]*data.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*data.Post, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*data.Post, error)
}

// CategoryRepository defines the interface for database operations on categories.
type CategoryRepository interface {
	GetBySlug(ctx context.Context, slug string) (*data.Category, error)
	GetByID(ctx context.Context, id int64) (*data.Category, error)
	ListPublished(ctx context.Context) ([]*data.Category, error)
}

// LocationRepository defines the interface for database operations on locations.
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*data.Location, error)
	ListPublished(ctx context.Context) ([]*data.Location, error)
}

// CommentRepository defines the interface for database operations on comments.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *data.Comment) (int64, error)
	GetCommentByID(ctx context.Context, id int64) (*data.Comment, error)
	UpdateComment(ctx context.Context, comment *data.Comment) error
	DeleteComment(ctx context.Context, id int64) error
	ListPublishedByPost(ctx context.Context, postID int64) ([]*data.Comment, error)
}

// UserRepository defines the interface for database operations on users.
type UserRepository interface {
	GetUserByID(ctx context.Context, id int64) (*data.User, error)
	GetUserByUsername(ctx context.Context, username string) (*data.User, error)
	UpsertBySubject(ctx context.Context, subject, username, email string) (*data.User, error)
	UpdateProfile(ctx context.Context, user *data.User) error
}

// PostInput carries the user-editable fields of a post through create and
// edit operations.
type PostInput struct {
	Title       string
	Text        string
	PubDate     time.Time
	CategoryID  *int64
	LocationID  *int64
	ImagePath   string
	IsPublished bool
}

// PostService provides the business logic for listing, viewing and mutating
// posts. Every operation consults the policy core with a fresh timestamp
// from the injected clock; nothing about a decision outlives the call.
type PostService struct {
	posts      PostRepository
	categories CategoryRepository
	locations  LocationRepository
	comments   CommentRepository
	users      UserRepository
	renderer   *renderer
	clock      policy.Clock
	pageSize   int
}

// NewPostService creates a new PostService with the given dependencies.
// A nil cache disables render memoization; a non-positive pageSize falls
// back to the pagination default.
func NewPostService(
	posts PostRepository,
	categories CategoryRepository,
	locations LocationRepository,
	comments CommentRepository,
	users UserRepository,
	renderCache *cache.Cache,
	clock policy.Clock,
	pageSize int,
) *PostService {
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}
	return &PostService{
		posts:      posts,
		categories: categories,
		locations:  locations,
		comments:   comments,
		users:      users,
		renderer:   newRenderer(renderCache),
		clock:      clock,
		pageSize:   pageSize,
	}
}

func notFound(err error) bool {
	return errors.Is(err, data.ErrNotFound)
}

// ListIndex returns the requested page of the public front page feed.
func (s *PostService) ListIndex(ctx context.Context, viewer policy.Viewer, rawPage string) (pagination.Page[*data.Post], error) {
	candidates, err := s.posts.ListAll(ctx)
	if err != nil {
		return pagination.Page[*data.Post]{}, err
	}
	visible := policy.FilterForListing(viewer, candidates, policy.GlobalIndex(), s.clock.Now())
	return pagination.Paginate(visible, s.pageSize, pagination.ParsePageNumber(rawPage)), nil
}

// ListCategory returns a published category and the requested page of its
// visible posts. An unpublished or unknown category is reported as not
// found, indistinguishable from one that never existed.
func (s *PostService) ListCategory(ctx context.Context, viewer policy.Viewer, slug, rawPage string) (*data.Category, pagination.Page[*data.Post], error) {
	var empty pagination.Page[*data.Post]
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if notFound(err) {
			return nil, empty, ErrNotFound
		}
		return nil, empty, err
	}
	if !category.IsPublished {
		return nil, empty, ErrNotFound
	}
	candidates, err := s.posts.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, empty, err
	}
	visible := policy.FilterForListing(viewer, candidates, policy.InCategory(category.ID), s.clock.Now())
	return category, pagination.Paginate(visible, s.pageSize, pagination.ParsePageNumber(rawPage)), nil
}

// ListProfile returns a user and the requested page of their posts. The
// profile owner sees all of their own posts, published or not; everyone
// else sees only publicly visible ones.
func (s *PostService) ListProfile(ctx context.Context, viewer policy.Viewer, username, rawPage string) (*data.User, pagination.Page[*data.Post], error) {
	var empty pagination.Page[*data.Post]
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if notFound(err) {
			return nil, empty, ErrNotFound
		}
		return nil, empty, err
	}
	candidates, err := s.posts.ListByAuthor(ctx, user.ID)
	if err != nil {
		return nil, empty, err
	}
	visible := policy.FilterForListing(viewer, candidates, policy.Profile(user.ID), s.clock.Now())
	return user, pagination.Paginate(visible, s.pageSize, pagination.ParsePageNumber(rawPage)), nil
}

// ViewPost returns a post with its rendered body and published comments.
// A post hidden from the viewer is reported exactly like an absent one.
func (s *PostService) ViewPost(ctx context.Context, viewer policy.Viewer, id int64) (*data.Post, []*data.Comment, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if policy.AuthorizePost(viewer, post, policy.ActionView, s.clock.Now()) != policy.Allow {
		return nil, nil, ErrNotFound
	}
	if err := s.renderer.renderPost(post); err != nil {
		return nil, nil, err
	}
	comments, err := s.comments.ListPublishedByPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

// CreatePost stores a new post owned by the viewer and returns it together
// with the destination to redirect to (the author's profile).
func (s *PostService) CreatePost(ctx context.Context, viewer policy.Viewer, input PostInput) (*data.Post, string, error) {
	if !viewer.Authenticated {
		return nil, "", ErrNotFound
	}
	author, err := s.users.GetUserByID(ctx, viewer.UserID)
	if err != nil {
		if notFound(err) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	post := &data.Post{
		Title:       input.Title,
		Text:        input.Text,
		PubDate:     input.PubDate,
		AuthorID:    viewer.UserID,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
		ImagePath:   input.ImagePath,
		IsPublished: input.IsPublished,
	}
	if _, err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, "", err
	}
	return post, policy.ResolvePostDestination(policy.ActionCreate, post, author.Username), nil
}

// GetPostForEdit fetches a post for the edit form, applying the same
// ownership decision as the save itself: a non-owner gets a RedirectError
// to the post's detail page.
func (s *PostService) GetPostForEdit(ctx context.Context, viewer policy.Viewer, id int64) (*data.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	switch policy.AuthorizePost(viewer, post, policy.ActionEdit, s.clock.Now()) {
	case policy.Allow:
		return post, nil
	case policy.RedirectToCanonical:
		return nil, &RedirectError{Location: policy.PostDetailPath(post.ID)}
	default:
		return nil, ErrNotFound
	}
}

// UpdatePost applies the input to an existing post and returns the
// post-action destination (the post's detail page).
func (s *PostService) UpdatePost(ctx context.Context, viewer policy.Viewer, id int64, input PostInput) (*data.Post, string, error) {
	post, err := s.GetPostForEdit(ctx, viewer, id)
	if err != nil {
		return nil, "", err
	}
	post.Title = input.Title
	post.Text = input.Text
	post.PubDate = input.PubDate
	post.CategoryID = input.CategoryID
	post.LocationID = input.LocationID
	post.ImagePath = input.ImagePath
	post.IsPublished = input.IsPublished
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, "", err
	}
	s.renderer.invalidate(post.ID)
	return post, policy.ResolvePostDestination(policy.ActionEdit, post, ""), nil
}

// DeletePost removes a post and returns the post-action destination (the
// index). A non-owner is answered with not-found, never a redirect.
func (s *PostService) DeletePost(ctx context.Context, viewer policy.Viewer, id int64) (string, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		if notFound(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	if policy.AuthorizePost(viewer, post, policy.ActionDelete, s.clock.Now()) != policy.Allow {
		return "", ErrNotFound
	}
	if err := s.posts.DeletePost(ctx, id); err != nil {
		return "", err
	}
	s.renderer.invalidate(id)
	return policy.ResolvePostDestination(policy.ActionDelete, post, ""), nil
}

// PubliclyVisible returns every post an anonymous viewer may see, for the
// sitemap.
func (s *PostService) PubliclyVisible(ctx context.Context) ([]*data.Post, error) {
	candidates, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return policy.FilterForListing(policy.Anonymous(), candidates, policy.GlobalIndex(), s.clock.Now()), nil
}

// FormOptions returns the published categories and locations offered by the
// post form.
func (s *PostService) FormOptions(ctx context.Context) ([]*data.Category, []*data.Location, error) {
	categories, err := s.categories.ListPublished(ctx)
	if err != nil {
		return nil, nil, err
	}
	locations, err := s.locations.ListPublished(ctx)
	if err != nil {
		return nil, nil, err
	}
	return categories, locations, nil
}
