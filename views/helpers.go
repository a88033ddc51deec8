package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

// buildURL joins path segments onto a base URL.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}

// PathEscape wraps url.PathEscape for use in component expressions.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// FormatDate renders an RFC 3339 timestamp as a human-readable date.
// Unparseable input comes back unchanged.
func FormatDate(rfc3339 string) string {
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return rfc3339
	}
	return t.Format("January 2, 2006")
}

// CatalogQuery assembles the query string for catalog filter links so the
// active category, search and page survive navigation.
func CatalogQuery(category, query string, page int) string {
	v := url.Values{}
	if category != "" {
		v.Set("category", category)
	}
	if query != "" {
		v.Set("q", query)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ProductJsonLD produces a Schema.org Product JSON-LD block.
func ProductJsonLD(cfg SiteConfig, p Product) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        p.Name,
		"description": p.Description,
		"url":         buildURL(cfg.URL, "products", p.Slug),
		"category":    p.Category,
	}
	if p.Image != "" {
		data["image"] = p.Image
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ArticleJsonLD produces a Schema.org Article JSON-LD block.
func ArticleJsonLD(cfg SiteConfig, art Article) string {
	articleURL := buildURL(cfg.URL, "articles", art.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "Article",
		"headline":      art.Title,
		"description":   art.Excerpt,
		"datePublished": art.CreatedAt,
		"url":           articleURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   articleURL,
		},
	}
	author := art.Author
	if author == "" {
		author = cfg.Author
	}
	if author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// CategoryClass returns CSS classes for a category filter pill.
func CategoryClass(active bool) string {
	base := "category-pill"
	if active {
		base += " category-pill-active"
	}
	return base
}

// Truncate shortens s to max runes on a word boundary with an ellipsis.
func Truncate(s string, max int) string {
	if len([]rune(s)) <= max {
		return s
	}
	runes := []rune(s)[:max]
	cut := strings.LastIndexByte(string(runes), ' ')
	if cut > 0 {
		return string(runes)[:cut] + "…"
	}
	return string(runes) + "…"
}
