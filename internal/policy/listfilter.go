package policy

import (
	"go-blog-app/internal/data"
	"sort"
	"time"
)

// scopeKind discriminates the listing scopes.
type scopeKind int

const (
	scopeGlobalIndex scopeKind = iota
	scopeProfile
	scopeInCategory
)

// Scope identifies which listing endpoint a filter run is for. The scopes
// differ in whether the owner bypasses the visibility filter and in the
// extra category constraint.
type Scope struct {
	kind       scopeKind
	ownerID    int64
	categoryID int64
}

// GlobalIndex is the scope of the public front page feed.
func GlobalIndex() Scope {
	return Scope{kind: scopeGlobalIndex}
}

// Profile is the scope of a user's profile page. The profile owner sees all
// of their own posts, published or not.
func Profile(ownerID int64) Scope {
	return Scope{kind: scopeProfile, ownerID: ownerID}
}

// InCategory is the scope of a category page.
func InCategory(categoryID int64) Scope {
	return Scope{kind: scopeInCategory, categoryID: categoryID}
}

// FilterForListing returns the subset of candidates the viewer may see under
// the given scope, ordered by publication date descending. Ties keep the
// candidates' original (insertion) order; callers pass candidates in
// insertion order and the sort is stable.
//
// The decision is recomputed from the candidates on every call; nothing is
// cached across requests.
func FilterForListing(viewer Viewer, candidates []*data.Post, scope Scope, now time.Time) []*data.Post {
	filtered := make([]*data.Post, 0, len(candidates))
	for _, post := range candidates {
		if eligible(viewer, post, scope, now) {
			filtered = append(filtered, post)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].PubDate.After(filtered[j].PubDate)
	})
	return filtered
}

func eligible(viewer Viewer, post *data.Post, scope Scope, now time.Time) bool {
	switch scope.kind {
	case scopeProfile:
		if post.AuthorID != scope.ownerID {
			return false
		}
		// The profile owner sees everything of their own, published or not.
		if viewer.Owns(scope.ownerID) {
			return true
		}
		return IsPubliclyVisible(post, now)
	case scopeInCategory:
		if post.CategoryID == nil || *post.CategoryID != scope.categoryID {
			return false
		}
		return IsPubliclyVisible(post, now)
	default: // global index: viewer-agnostic, no owner bypass
		return IsPubliclyVisible(post, now)
	}
}
