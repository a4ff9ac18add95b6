package service

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"go-blog-app/internal/cache"
	"go-blog-app/internal/data"
)

const renderTTL = 24 * time.Hour

// renderer converts post markdown into sanitized HTML, memoizing the result
// in the SQLite cache. Only rendering output is cached; the cache entry is
// evicted whenever the post is edited or deleted.
type renderer struct {
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
	cache     *cache.Cache
}

func newRenderer(c *cache.Cache) *renderer {
	return &renderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
		),
		// UGCPolicy allows basic formatting (links, lists, emphasis) while
		// stripping anything dangerous from the rendered markdown.
		sanitizer: bluemonday.UGCPolicy(),
		cache:     c,
	}
}

func renderCacheKey(postID int64) string {
	return fmt.Sprintf("post:%d", postID)
}

// renderPost fills post.HTMLText from post.Text.
func (r *renderer) renderPost(post *data.Post) error {
	key := renderCacheKey(post.ID)
	if r.cache != nil {
		if cached, err := r.cache.Get(key); err == nil && cached != nil {
			post.HTMLText = template.HTML(cached)
			return nil
		}
	}

	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(post.Text), &buf); err != nil {
		return fmt.Errorf("failed to render post markdown: %w", err)
	}
	rendered := r.sanitizer.SanitizeBytes(buf.Bytes())

	if r.cache != nil {
		// Best effort; a failed cache write must not fail the request.
		_ = r.cache.Set(key, rendered, renderTTL)
	}
	post.HTMLText = template.HTML(rendered)
	return nil
}

// invalidate drops the cached rendering of a post after an edit or delete.
func (r *renderer) invalidate(postID int64) {
	if r.cache != nil {
		_ = r.cache.Delete(renderCacheKey(postID))
	}
}
