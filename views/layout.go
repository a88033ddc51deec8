package views

import (
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

func esc(s string) string {
	return html.EscapeString(s)
}

// component wraps a builder function as a templ.Component so the engine can
// render it like any other template.
func component(build func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		build(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeHead(b *strings.Builder, site SiteConfig, meta PageMeta, jsonLD string) {
	title := meta.Title
	if title == "" {
		title = site.Name
	}
	desc := meta.Description
	if desc == "" {
		desc = site.Description
	}
	ogType := meta.OGType
	if ogType == "" {
		ogType = "website"
	}

	b.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
	b.WriteString(`<meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	b.WriteString("<title>" + esc(title) + "</title>")
	b.WriteString(`<meta name="description" content="` + esc(desc) + `"/>`)
	b.WriteString(`<meta property="og:title" content="` + esc(title) + `"/>`)
	b.WriteString(`<meta property="og:description" content="` + esc(desc) + `"/>`)
	b.WriteString(`<meta property="og:type" content="` + esc(ogType) + `"/>`)
	b.WriteString(`<meta property="og:site_name" content="` + esc(site.Name) + `"/>`)
	if meta.URL != "" {
		b.WriteString(`<meta property="og:url" content="` + esc(meta.URL) + `"/>`)
		b.WriteString(`<link rel="canonical" href="` + esc(meta.URL) + `"/>`)
	}
	if meta.Image != "" {
		b.WriteString(`<meta property="og:image" content="` + esc(meta.Image) + `"/>`)
		b.WriteString(`<meta name="twitter:card" content="summary_large_image"/>`)
	}
	b.WriteString(`<link rel="icon" href="/favicon.svg" type="image/svg+xml"/>`)
	b.WriteString(`<link rel="alternate" type="application/rss+xml" title="` + esc(site.Name) + `" href="/feed.xml"/>`)
	b.WriteString(`<link rel="stylesheet" href="/public/styles.css"/>`)
	if jsonLD != "" {
		b.WriteString(`<script type="application/ld+json">` + jsonLD + `</script>`)
	}
	b.WriteString("</head><body>")

	b.WriteString(`<header class="site-header"><nav>`)
	b.WriteString(`<a class="brand" href="/">` + esc(site.Name) + `</a>`)
	b.WriteString(`<a href="/">Products</a>`)
	b.WriteString(`<a href="/articles">Articles</a>`)
	b.WriteString(`</nav></header>`)
	b.WriteString(`<main>`)
}

func writeFooter(b *strings.Builder, site SiteConfig) {
	b.WriteString(`</main>`)
	b.WriteString(`<footer class="site-footer">`)
	writeNewsletterForm(b)
	b.WriteString(`<p>&copy; ` + esc(site.Name) + `</p>`)
	b.WriteString(`</footer>`)
	b.WriteString(newsletterScript)
	b.WriteString("</body></html>")
}

func writeNewsletterForm(b *strings.Builder) {
	b.WriteString(`<section class="newsletter"><h2>Stay in the loop</h2>`)
	b.WriteString(`<form id="newsletter-form">`)
	b.WriteString(`<input type="email" name="email" placeholder="you@example.com" required/>`)
	b.WriteString(`<button type="submit">Subscribe</button>`)
	b.WriteString(`<p id="newsletter-status" role="status"></p>`)
	b.WriteString(`</form></section>`)
}

// newsletterScript posts the signup form to the JSON endpoint without a page
// reload.
const newsletterScript = `<script>
(function () {
	var form = document.getElementById('newsletter-form');
	if (!form) return;
	var status = document.getElementById('newsletter-status');
	form.addEventListener('submit', function (e) {
		e.preventDefault();
		status.textContent = 'Subscribing…';
		fetch('/api/newsletter', {
			method: 'POST',
			headers: { 'Content-Type': 'application/json' },
			body: JSON.stringify({ email: form.email.value })
		}).then(function (res) {
			status.textContent = res.ok ? 'Thanks for subscribing!' : 'Subscription failed. Try again.';
			if (res.ok) form.reset();
		}).catch(function () {
			status.textContent = 'Subscription failed. Try again.';
		});
	});
})();
</script>`

// writePagination emits prev/next links preserving the filter state.
func writePagination(b *strings.Builder, basePath, category, query string, page, totalPages int) {
	if totalPages <= 1 {
		return
	}
	b.WriteString(`<nav class="pagination">`)
	if page > 1 {
		b.WriteString(`<a rel="prev" href="` + esc(basePath+CatalogQuery(category, query, page-1)) + `">&larr; Previous</a>`)
	}
	b.WriteString(`<span>Page ` + strconv.Itoa(page) + ` of ` + strconv.Itoa(totalPages) + `</span>`)
	if page < totalPages {
		b.WriteString(`<a rel="next" href="` + esc(basePath+CatalogQuery(category, query, page+1)) + `">Next &rarr;</a>`)
	}
	b.WriteString(`</nav>`)
}

func writeCategoryFilter(b *strings.Builder, basePath string, categories []string, active, query string) {
	b.WriteString(`<div class="category-filter">`)
	b.WriteString(`<a class="` + CategoryClass(active == "" || active == "All") + `" href="` + esc(basePath+CatalogQuery("", query, 0)) + `">All</a>`)
	for _, cat := range categories {
		if cat == "All" {
			continue
		}
		b.WriteString(`<a class="` + CategoryClass(active == cat) + `" href="` + esc(basePath+CatalogQuery(cat, query, 0)) + `">` + esc(cat) + `</a>`)
	}
	b.WriteString(`</div>`)
}

func writeSearchForm(b *strings.Builder, basePath, category, query string) {
	b.WriteString(`<form class="search" method="get" action="` + esc(basePath) + `">`)
	if category != "" {
		b.WriteString(`<input type="hidden" name="category" value="` + esc(category) + `"/>`)
	}
	b.WriteString(`<input type="search" name="q" placeholder="Search…" value="` + esc(query) + `"/>`)
	b.WriteString(`<button type="submit">Search</button>`)
	b.WriteString(`</form>`)
}
