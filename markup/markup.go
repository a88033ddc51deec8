// Package markup renders the constrained inline syntax allowed in article
// bodies (bold, italic, internal cross-reference tokens and bare URLs)
// into pre-escaped HTML. It is an allow-list transformer: input is
// HTML-escaped first and only the markup passes below introduce tags, so
// user-authored content is never passed through raw.
package markup

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reProductRef = regexp.MustCompile(`#product-([a-zA-Z0-9-]+)`)
	reArticleRef = regexp.MustCompile(`#article-([a-zA-Z0-9-]+)`)
	// The NUL byte never appears in escaped text, so excluding it stops the
	// URL pass from swallowing an already-stashed cross-reference anchor.
	reBareURL = regexp.MustCompile("https?://[^\\s<\x00]+")
)

// Render converts raw article text to safe display markup. Pass order is
// fixed and load-bearing: escape, cross-reference tokens, bare URLs, bold,
// italic, newlines. Cross-reference tokens link to the canonical detail
// paths, so legacy hash tokens in stored bodies resolve server-side.
// Cross-reference tokens always take precedence over the
// generic URL pass: a token adjacent to (or inside) a bare URL is linked as
// a token, and anchors produced by earlier passes are stashed behind
// placeholders so no anchor ever nests inside another.
func Render(raw string) string {
	out := html.EscapeString(raw)

	var stash []string
	put := func(a string) string {
		ph := "\x00" + strconv.Itoa(len(stash)) + "\x00"
		stash = append(stash, a)
		return ph
	}

	out = reProductRef.ReplaceAllStringFunc(out, func(m string) string {
		id := strings.TrimPrefix(m, "#product-")
		return put(`<a href="/products/` + id + `" class="ref ref-product">View Product →</a>`)
	})
	out = reArticleRef.ReplaceAllStringFunc(out, func(m string) string {
		id := strings.TrimPrefix(m, "#article-")
		return put(`<a href="/articles/` + id + `" class="ref ref-article">Read Article →</a>`)
	})
	out = reBareURL.ReplaceAllStringFunc(out, func(m string) string {
		href := SafeURL(m)
		if href == "" {
			return m
		}
		return put(`<a href="` + href + `" target="_blank" rel="noopener noreferrer">` + m + `</a>`)
	})

	out = reBold.ReplaceAllString(out, "<strong>$1</strong>")
	out = reItalic.ReplaceAllString(out, "<em>$1</em>")
	out = strings.ReplaceAll(out, "\n", "<br/>")

	for i, a := range stash {
		out = strings.Replace(out, "\x00"+strconv.Itoa(i)+"\x00", a, 1)
	}
	return out
}

// Component wraps Render as a templ component for direct use in views.
func Component(raw string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(Render(raw))
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// SafeURL validates and sanitizes a URL for use in HTML attributes.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
