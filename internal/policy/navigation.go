package policy

import (
	"fmt"
	"go-blog-app/internal/data"
	"net/url"
)

// Path builders for the application's canonical locations. Handlers and the
// navigation resolver share these so URL shapes live in one place.

func IndexPath() string {
	return "/"
}

func PostDetailPath(postID int64) string {
	return fmt.Sprintf("/posts/%d", postID)
}

func ProfilePath(username string) string {
	return "/profile/" + url.PathEscape(username)
}

func CategoryPath(slug string) string {
	return "/category/" + url.PathEscape(slug)
}

// ResolvePostDestination maps a completed post mutation to the location the
// viewer is sent to afterwards: delete lands on the index, create on the
// author's profile, and everything else on the post's own detail page.
func ResolvePostDestination(action Action, post *data.Post, authorUsername string) string {
	switch action {
	case ActionDelete:
		return IndexPath()
	case ActionCreate:
		return ProfilePath(authorUsername)
	default:
		return PostDetailPath(post.ID)
	}
}

// ResolveCommentDestination maps any completed comment mutation to the
// detail page of the owning post.
func ResolveCommentDestination(postID int64) string {
	return PostDetailPath(postID)
}
