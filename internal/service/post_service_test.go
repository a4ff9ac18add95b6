//go:build unit

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go-blog-app/internal/data"
	"go-blog-app/internal/policy"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// fixedClock pins the policy clock to testNow.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// mockPostRepository is an in-memory PostRepository for service tests.
type mockPostRepository struct {
	posts   []*data.Post
	nextID  int64
	deleted []int64
	updated []*data.Post
}

var _ PostRepository = (*mockPostRepository)(nil)

func (m *mockPostRepository) CreatePost(ctx context.Context, post *data.Post) (int64, error) {
	m.nextID++
	post.ID = m.nextID
	m.posts = append(m.posts, post)
	return post.ID, nil
}

func (m *mockPostRepository) GetPostByID(ctx context.Context, id int64) (*data.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *mockPostRepository) UpdatePost(ctx context.Context, post *data.Post) error {
	m.updated = append(m.updated, post)
	return nil
}

func (m *mockPostRepository) DeletePost(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockPostRepository) ListAll(ctx context.Context) ([]*data.Post, error) {
	return m.posts, nil
}

func (m *mockPostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*data.Post, error) {
	var out []*data.Post
	for _, p := range m.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPostRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*data.Post, error) {
	var out []*data.Post
	for _, p := range m.posts {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockCategoryRepository struct {
	categories []*data.Category
}

var _ CategoryRepository = (*mockCategoryRepository)(nil)

func (m *mockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*data.Category, error) {
	for _, c := range m.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*data.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *mockCategoryRepository) ListPublished(ctx context.Context) ([]*data.Category, error) {
	var out []*data.Category
	for _, c := range m.categories {
		if c.IsPublished {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockLocationRepository struct {
	locations []*data.Location
}

var _ LocationRepository = (*mockLocationRepository)(nil)

func (m *mockLocationRepository) GetByID(ctx context.Context, id int64) (*data.Location, error) {
	for _, l := range m.locations {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *mockLocationRepository) ListPublished(ctx context.Context) ([]*data.Location, error) {
	return m.locations, nil
}

type mockCommentRepository struct {
	comments []*data.Comment
	nextID   int64
	deleted  []int64
}

var _ CommentRepository = (*mockCommentRepository)(nil)

func (m *mockCommentRepository) CreateComment(ctx context.Context, comment *data.Comment) (int64, error) {
	m.nextID++
	comment.ID = m.nextID
	m.comments = append(m.comments, comment)
	return comment.ID, nil
}

func (m *mockCommentRepository) GetCommentByID(ctx context.Context, id int64) (*data.Comment, error) {
	for _, c := range m.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *mockCommentRepository) UpdateComment(ctx context.Context, comment *data.Comment) error {
	return nil
}

func (m *mockCommentRepository) DeleteComment(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockCommentRepository) ListPublishedByPost(ctx context.Context, postID int64) ([]*data.Comment, error) {
	var out []*data.Comment
	for _, c := range m.comments {
		if c.PostID == postID && c.IsPublished {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockUserRepository struct {
	users []*data.User
}

var _ UserRepository = (*mockUserRepository)(nil)

func (m *mockUserRepository) GetUserByID(ctx context.Context, id int64) (*data.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *mockUserRepository) GetUserByUsername(ctx context.Context, username string) (*data.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *mockUserRepository) UpsertBySubject(ctx context.Context, subject, username, email string) (*data.User, error) {
	for _, u := range m.users {
		if u.Subject == subject {
			return u, nil
		}
	}
	user := &data.User{ID: int64(len(m.users) + 1), Subject: subject, Username: username, Email: email}
	m.users = append(m.users, user)
	return user, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, user *data.User) error {
	return nil
}

func i64(v int64) *int64 { return &v }

// testFixture wires a PostService over in-memory repositories seeded with
// one author (alice, id 10), one published category and a mix of posts.
type testFixture struct {
	service  *PostService
	posts    *mockPostRepository
	comments *mockCommentRepository
}

func newTestFixture() *testFixture {
	publishedCat := &data.Category{ID: 1, Title: "Travel", Slug: "travel", IsPublished: true}
	hiddenCat := &data.Category{ID: 2, Title: "Drafts", Slug: "drafts", IsPublished: false}

	posts := &mockPostRepository{
		nextID: 4,
		posts: []*data.Post{
			{ID: 1, Title: "old", AuthorID: 10, IsPublished: true, PubDate: testNow.Add(-2 * time.Hour), CategoryID: i64(1), Category: publishedCat},
			{ID: 2, Title: "new", AuthorID: 10, IsPublished: true, PubDate: testNow.Add(-1 * time.Hour), CategoryID: i64(1), Category: publishedCat},
			{ID: 3, Title: "draft", AuthorID: 10, IsPublished: false, PubDate: testNow.Add(-1 * time.Hour), CategoryID: i64(1), Category: publishedCat},
			{ID: 4, Title: "scheduled", AuthorID: 10, IsPublished: true, PubDate: testNow.Add(time.Hour), CategoryID: i64(1), Category: publishedCat},
		},
	}
	categories := &mockCategoryRepository{categories: []*data.Category{publishedCat, hiddenCat}}
	locations := &mockLocationRepository{locations: []*data.Location{{ID: 1, Name: "Berlin", IsPublished: true}}}
	comments := &mockCommentRepository{
		nextID: 1,
		comments: []*data.Comment{
			{ID: 1, Text: "nice", AuthorID: 20, PostID: 2, IsPublished: true},
		},
	}
	users := &mockUserRepository{users: []*data.User{
		{ID: 10, Subject: "sub-alice", Username: "alice"},
		{ID: 20, Subject: "sub-bob", Username: "bob"},
	}}

	svc := NewPostService(posts, categories, locations, comments, users, nil, fixedClock{testNow}, 10)
	return &testFixture{service: svc, posts: posts, comments: comments}
}

func TestListIndexFiltersAndOrders(t *testing.T) {
	f := newTestFixture()

	page, err := f.service.ListIndex(context.Background(), policy.Anonymous(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 visible posts, got %d", len(page.Items))
	}
	if page.Items[0].ID != 2 || page.Items[1].ID != 1 {
		t.Errorf("expected newest-first order [2 1], got [%d %d]", page.Items[0].ID, page.Items[1].ID)
	}

	// The author gets the same feed; the index has no owner bypass.
	page, err = f.service.ListIndex(context.Background(), policy.Identity(10), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Errorf("author must not see drafts on the index, got %d posts", len(page.Items))
	}
}

func TestListCategory(t *testing.T) {
	f := newTestFixture()

	category, page, err := f.service.ListCategory(context.Background(), policy.Anonymous(), "travel", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if category.Slug != "travel" {
		t.Errorf("expected travel category, got %q", category.Slug)
	}
	if len(page.Items) != 2 {
		t.Errorf("expected 2 visible posts, got %d", len(page.Items))
	}

	// An unpublished category answers exactly like an unknown one.
	_, _, err = f.service.ListCategory(context.Background(), policy.Anonymous(), "drafts", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unpublished category: got %v, want ErrNotFound", err)
	}
	_, _, err = f.service.ListCategory(context.Background(), policy.Anonymous(), "no-such", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown category: got %v, want ErrNotFound", err)
	}
}

func TestListProfileOwnerBypass(t *testing.T) {
	f := newTestFixture()

	_, page, err := f.service.ListProfile(context.Background(), policy.Anonymous(), "alice", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Errorf("stranger sees %d posts on alice's profile, want 2", len(page.Items))
	}

	_, page, err = f.service.ListProfile(context.Background(), policy.Identity(10), "alice", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 4 {
		t.Errorf("owner sees %d posts on own profile, want all 4", len(page.Items))
	}

	_, _, err = f.service.ListProfile(context.Background(), policy.Anonymous(), "nobody", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown profile: got %v, want ErrNotFound", err)
	}
}

func TestViewPost(t *testing.T) {
	f := newTestFixture()

	post, comments, err := f.service.ViewPost(context.Background(), policy.Anonymous(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.HTMLText == "" && post.Text != "" {
		t.Error("expected rendered HTML body")
	}
	if len(comments) != 1 {
		t.Errorf("expected 1 published comment, got %d", len(comments))
	}

	// Hidden and absent posts are indistinguishable to a stranger.
	for _, id := range []int64{3, 4, 99} {
		if _, _, err := f.service.ViewPost(context.Background(), policy.Identity(20), id); !errors.Is(err, ErrNotFound) {
			t.Errorf("post %d: got %v, want ErrNotFound", id, err)
		}
	}

	// The owner sees their own draft.
	if _, _, err := f.service.ViewPost(context.Background(), policy.Identity(10), 3); err != nil {
		t.Errorf("owner viewing own draft: unexpected error %v", err)
	}
}

func TestViewPostRendersMarkdown(t *testing.T) {
	f := newTestFixture()
	f.posts.posts[1].Text = "some **bold** text"

	post, _, err := f.service.ViewPost(context.Background(), policy.Anonymous(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "<strong>bold</strong>"; !strings.Contains(string(post.HTMLText), want) {
		t.Errorf("rendered body %q does not contain %q", post.HTMLText, want)
	}
}

func TestViewPostSanitizesScript(t *testing.T) {
	f := newTestFixture()
	f.posts.posts[1].Text = "hello <script>alert(1)</script>"

	post, _, err := f.service.ViewPost(context.Background(), policy.Anonymous(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(post.HTMLText), "<script>") {
		t.Errorf("rendered body must not contain script tags: %q", post.HTMLText)
	}
}

func TestCreatePost(t *testing.T) {
	f := newTestFixture()

	input := PostInput{Title: "fresh", Text: "body", PubDate: testNow, IsPublished: true}
	post, dest, err := f.service.CreatePost(context.Background(), policy.Identity(10), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID == 0 {
		t.Error("expected assigned post ID")
	}
	if post.AuthorID != 10 {
		t.Errorf("AuthorID = %d, want 10", post.AuthorID)
	}
	if dest != "/profile/alice" {
		t.Errorf("destination = %q, want /profile/alice", dest)
	}

	if _, _, err := f.service.CreatePost(context.Background(), policy.Anonymous(), input); !errors.Is(err, ErrNotFound) {
		t.Errorf("anonymous create: got %v, want ErrNotFound", err)
	}
}

func TestGetPostForEdit(t *testing.T) {
	f := newTestFixture()

	if _, err := f.service.GetPostForEdit(context.Background(), policy.Identity(10), 2); err != nil {
		t.Errorf("owner edit: unexpected error %v", err)
	}

	// A non-owner is redirected to the post's detail page, even for a
	// visible post.
	_, err := f.service.GetPostForEdit(context.Background(), policy.Identity(20), 2)
	var redirect *RedirectError
	if !errors.As(err, &redirect) {
		t.Fatalf("stranger edit: got %v, want RedirectError", err)
	}
	if redirect.Location != "/posts/2" {
		t.Errorf("redirect location = %q, want /posts/2", redirect.Location)
	}

	if _, err := f.service.GetPostForEdit(context.Background(), policy.Identity(20), 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("absent post edit: got %v, want ErrNotFound", err)
	}
}

func TestUpdatePost(t *testing.T) {
	f := newTestFixture()

	input := PostInput{Title: "renamed", Text: "body", PubDate: testNow, IsPublished: true}
	post, dest, err := f.service.UpdatePost(context.Background(), policy.Identity(10), 2, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Title != "renamed" {
		t.Errorf("Title = %q, want renamed", post.Title)
	}
	if dest != "/posts/2" {
		t.Errorf("destination = %q, want /posts/2", dest)
	}
	if len(f.posts.updated) != 1 {
		t.Errorf("expected 1 repository update, got %d", len(f.posts.updated))
	}

	// A stranger's update carries the same redirect as the edit form.
	_, _, err = f.service.UpdatePost(context.Background(), policy.Identity(20), 2, input)
	var redirect *RedirectError
	if !errors.As(err, &redirect) {
		t.Errorf("stranger update: got %v, want RedirectError", err)
	}
}

func TestDeletePost(t *testing.T) {
	f := newTestFixture()

	dest, err := f.service.DeletePost(context.Background(), policy.Identity(10), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest != "/" {
		t.Errorf("destination = %q, want /", dest)
	}
	if len(f.posts.deleted) != 1 || f.posts.deleted[0] != 2 {
		t.Errorf("expected post 2 deleted, got %v", f.posts.deleted)
	}

	// A stranger deleting a visible post gets not-found, never a redirect.
	if _, err := f.service.DeletePost(context.Background(), policy.Identity(20), 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("stranger delete: got %v, want ErrNotFound", err)
	}
	if len(f.posts.deleted) != 1 {
		t.Errorf("denied delete must not touch the repository, got %v", f.posts.deleted)
	}
}

func TestPubliclyVisible(t *testing.T) {
	f := newTestFixture()

	posts, err := f.service.PubliclyVisible(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("expected 2 publicly visible posts, got %d", len(posts))
	}
}

