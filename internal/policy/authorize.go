package policy

import (
	"go-blog-app/internal/data"
	"time"
)

// AuthorizePost decides whether the viewer may perform the given action on
// the post. Owners are allowed everything on their own posts, published or
// not. For everyone else:
//
//   - view: allowed only while the post is publicly visible, otherwise the
//     post is reported as not found;
//   - edit: redirected to the post's canonical detail page;
//   - delete: reported as not found.
//
// A nil post is reported as not found for every action. ActionCreate is
// never consulted here because no resource exists yet; the route guard
// requires authentication before a create handler runs.
func AuthorizePost(viewer Viewer, post *data.Post, action Action, now time.Time) Decision {
	if action == ActionCreate {
		return Allow
	}
	if post == nil {
		return DenyNotFound
	}
	if viewer.Owns(post.AuthorID) {
		return Allow
	}
	switch action {
	case ActionView:
		if IsPubliclyVisible(post, now) {
			return Allow
		}
		return DenyNotFound
	case ActionEdit:
		return RedirectToCanonical
	default:
		return DenyNotFound
	}
}

// AuthorizeComment decides whether the viewer may perform the given action
// on the comment. Comments have a stricter policy than posts: anonymous
// viewers are denied everything, and a non-owner is always answered with
// not-found, never a redirect.
func AuthorizeComment(viewer Viewer, comment *data.Comment, action Action) Decision {
	if !viewer.Authenticated {
		return DenyNotFound
	}
	if action == ActionCreate {
		return Allow
	}
	if comment == nil {
		return DenyNotFound
	}
	if viewer.Owns(comment.AuthorID) {
		return Allow
	}
	return DenyNotFound
}
