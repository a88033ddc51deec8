package views

import (
	"strings"

	"github.com/a-h/templ"
)

// ProductDetail renders a single product page. The outbound button goes
// through the click-tracking redirect rather than straight to the affiliate
// link.
func ProductDetail(page ProductPage) templ.Component {
	return component(func(b *strings.Builder) {
		writeHead(b, page.Site, page.Meta, ProductJsonLD(page.Site, page.Product))
		p := page.Product

		b.WriteString(`<article class="product-detail">`)
		if p.Image != "" {
			b.WriteString(`<img src="` + esc(p.Image) + `" alt="` + esc(p.Name) + `"/>`)
		}
		b.WriteString(`<div class="product-detail-body">`)
		b.WriteString(`<span class="category-tag">` + esc(p.Category) + `</span>`)
		b.WriteString(`<h1>` + esc(p.Name) + `</h1>`)
		b.WriteString(`<p>` + esc(p.Description) + `</p>`)
		b.WriteString(`<a class="button button-primary" href="/products/` + PathEscape(p.Slug) + `/go" rel="nofollow sponsored">Get This Deal &rarr;</a>`)
		b.WriteString(`</div></article>`)

		if len(page.Related) > 0 {
			b.WriteString(`<section class="related"><h2>Related Products</h2><div class="product-grid">`)
			for _, rp := range page.Related {
				writeProductCard(b, rp)
			}
			b.WriteString(`</div></section>`)
		}

		writeFooter(b, page.Site)
	})
}
