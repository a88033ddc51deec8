package views

import (
	"strings"

	"github.com/a-h/templ"
)

// Home renders the storefront landing page.
func Home(page HomePage) templ.Component {
	return component(func(b *strings.Builder) {
		writeHead(b, page.Site, page.Meta, WebsiteJsonLD(page.Site))

		if page.Featured != nil && page.ActiveCategory == "" && page.Query == "" && page.Page <= 1 {
			writeFeaturedBanner(b, *page.Featured)
		}

		b.WriteString(`<section class="catalog">`)
		writeSearchForm(b, "/", page.ActiveCategory, page.Query)
		writeCategoryFilter(b, "/", page.Categories, page.ActiveCategory, page.Query)

		if len(page.Products) == 0 {
			b.WriteString(`<p class="empty">No products found.</p>`)
		} else {
			b.WriteString(`<div class="product-grid">`)
			for _, p := range page.Products {
				writeProductCard(b, p)
			}
			b.WriteString(`</div>`)
		}
		writePagination(b, "/", page.ActiveCategory, page.Query, page.Page, page.TotalPages)
		b.WriteString(`</section>`)

		writeFooter(b, page.Site)
	})
}

func writeFeaturedBanner(b *strings.Builder, p Product) {
	b.WriteString(`<section class="featured">`)
	if p.Image != "" {
		b.WriteString(`<img src="` + esc(p.Image) + `" alt="` + esc(p.Name) + `"/>`)
	}
	b.WriteString(`<div class="featured-body">`)
	b.WriteString(`<span class="featured-tag">Featured</span>`)
	b.WriteString(`<h1>` + esc(p.Name) + `</h1>`)
	b.WriteString(`<p>` + esc(Truncate(p.Description, 200)) + `</p>`)
	b.WriteString(`<a class="button" href="/products/` + PathEscape(p.Slug) + `">View Product</a>`)
	b.WriteString(`</div></section>`)
}

func writeProductCard(b *strings.Builder, p Product) {
	href := "/products/" + PathEscape(p.Slug)
	b.WriteString(`<article class="product-card">`)
	b.WriteString(`<a href="` + href + `">`)
	if p.Image != "" {
		b.WriteString(`<img src="` + esc(p.Image) + `" alt="` + esc(p.Name) + `" loading="lazy"/>`)
	}
	b.WriteString(`<h3>` + esc(p.Name) + `</h3>`)
	b.WriteString(`</a>`)
	b.WriteString(`<span class="category-tag">` + esc(p.Category) + `</span>`)
	b.WriteString(`<p>` + esc(Truncate(p.Description, 140)) + `</p>`)
	b.WriteString(`<a class="button" href="` + href + `">Details</a>`)
	b.WriteString(`</article>`)
}
