package data

import (
	"html/template"
	"time"
)

// Post represents a single blog publication in the database.
//
// CategoryID and LocationID are nullable foreign keys with ON DELETE SET NULL
// semantics: removing a category or location detaches it from the post rather
// than failing. The joined Category, Location and author fields are populated
// by the repository; HTMLText is the rendered markdown body populated by the
// service layer.
type Post struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Text        string    `db:"text"`
	PubDate     time.Time `db:"pub_date"`
	AuthorID    int64     `db:"author_id"`
	CategoryID  *int64    `db:"category_id"`
	LocationID  *int64    `db:"location_id"`
	ImagePath   string    `db:"image_path"`
	IsPublished bool      `db:"is_published"`
	CreatedAt   time.Time `db:"created_at"`

	AuthorUsername string        `db:"author_username"`
	Category       *Category     `db:"-"`
	Location       *Location     `db:"-"`
	HTMLText       template.HTML `db:"-"`
	CommentCount   int           `db:"comment_count"`
}

// HasCategory reports whether the post is attached to the given category.
// Safe to call on a nil post, which keeps form templates simple.
func (p *Post) HasCategory(id int64) bool {
	return p != nil && p.CategoryID != nil && *p.CategoryID == id
}

// HasLocation reports whether the post is tagged with the given location.
func (p *Post) HasLocation(id int64) bool {
	return p != nil && p.LocationID != nil && *p.LocationID == id
}

// Category represents a category blog posts can be attached to.
// An unpublished category hides every post attached to it from public view.
type Category struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Slug        string    `db:"slug"`
	IsPublished bool      `db:"is_published"`
	CreatedAt   time.Time `db:"created_at"`
}

// Location represents a place a post can be tagged with. Locations are
// display metadata only; they do not participate in visibility decisions.
type Location struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	IsPublished bool      `db:"is_published"`
	CreatedAt   time.Time `db:"created_at"`
}

// Comment represents a comment left under a post. Comments live and die with
// their own is_published flag, independently of the post's visibility.
type Comment struct {
	ID          int64     `db:"id"`
	Text        string    `db:"text"`
	AuthorID    int64     `db:"author_id"`
	PostID      int64     `db:"post_id"`
	IsPublished bool      `db:"is_published"`
	CreatedAt   time.Time `db:"created_at"`

	AuthorUsername string `db:"author_username"`
}

// User represents a registered author. Subject is the OIDC subject claim the
// user authenticates with; Username is the public profile handle.
type User struct {
	ID        int64     `db:"id"`
	Subject   string    `db:"subject"`
	Username  string    `db:"username"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}
