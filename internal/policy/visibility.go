package policy

import (
	"go-blog-app/internal/data"
	"time"
)

// IsPubliclyVisible reports whether a post may be shown to a viewer other
// than its owner at the given instant. A post is publicly visible only when
// it is published, its category exists and is published, and its publication
// date has passed.
//
// A post without a category is never publicly visible: the category foreign
// key is SET NULL on category delete, so deleting a category silently hides
// its posts rather than erroring. The gate fails closed.
func IsPubliclyVisible(post *data.Post, now time.Time) bool {
	if post == nil || !post.IsPublished {
		return false
	}
	if post.Category == nil || !post.Category.IsPublished {
		return false
	}
	return !post.PubDate.After(now)
}
