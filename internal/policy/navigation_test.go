//go:build unit

package policy

import (
	"testing"

	"go-blog-app/internal/data"
)

func TestResolvePostDestination(t *testing.T) {
	post := &data.Post{ID: 42}

	testCases := []struct {
		name   string
		action Action
		want   string
	}{
		{"delete lands on the index", ActionDelete, "/"},
		{"create lands on the author's profile", ActionCreate, "/profile/alice"},
		{"edit lands on the post detail", ActionEdit, "/posts/42"},
		{"view lands on the post detail", ActionView, "/posts/42"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolvePostDestination(tc.action, post, "alice"); got != tc.want {
				t.Errorf("ResolvePostDestination() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveCommentDestination(t *testing.T) {
	if got := ResolveCommentDestination(7); got != "/posts/7" {
		t.Errorf("ResolveCommentDestination() = %q, want %q", got, "/posts/7")
	}
}

func TestProfilePathEscapesUsername(t *testing.T) {
	if got := ProfilePath("a b/c"); got != "/profile/a%20b%2Fc" {
		t.Errorf("ProfilePath() = %q", got)
	}
}
