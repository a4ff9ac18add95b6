package handler

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"go-blog-app/internal/policy"
	"go-blog-app/internal/service"
)

const sitemapDateFormat = "2006-01-02"

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	postService *service.PostService
	baseURL     string
}

// NewSeoHandler creates a new SeoHandler. baseURL is the externally visible
// origin of the site, without a trailing slash.
func NewSeoHandler(ps *service.PostService, baseURL string) *SeoHandler {
	return &SeoHandler{postService: ps, baseURL: strings.TrimRight(baseURL, "/")}
}

// robotsHandler serves a static robots.txt file.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Sitemap: "+h.baseURL+"/sitemap.xml")
}

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler generates a sitemap.xml of every publicly visible post.
// Hidden and scheduled posts are absent, same as everywhere else.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.PubliclyVisible(r.Context())
	if err != nil {
		http.Error(w, "Failed to retrieve posts for sitemap", http.StatusInternalServerError)
		return
	}

	sitemap := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, len(posts)),
	}
	for i, post := range posts {
		sitemap.URLs[i] = sitemapURL{
			Loc:     h.baseURL + policy.PostDetailPath(post.ID),
			LastMod: post.PubDate.Format(sitemapDateFormat),
		}
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		http.Error(w, "Failed to generate sitemap XML", http.StatusInternalServerError)
		return
	}
}
