package views

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/affliora/affliora/markup"
)

// ArticleDetail renders a single article page. The body goes through the
// inline markup renderer.
func ArticleDetail(page ArticlePage) templ.Component {
	return component(func(b *strings.Builder) {
		writeHead(b, page.Site, page.Meta, ArticleJsonLD(page.Site, page.Article))
		art := page.Article

		b.WriteString(`<article class="article-detail">`)
		b.WriteString(`<header>`)
		b.WriteString(`<span class="category-tag">` + esc(art.Category) + `</span>`)
		b.WriteString(`<h1>` + esc(art.Title) + `</h1>`)
		b.WriteString(`<p class="article-meta">`)
		if art.Author != "" {
			b.WriteString(`By ` + esc(art.Author) + ` &middot; `)
		}
		b.WriteString(`<time datetime="` + esc(art.CreatedAt) + `">` + esc(FormatDate(art.CreatedAt)) + `</time>`)
		b.WriteString(`</p>`)
		if art.Image != "" {
			b.WriteString(`<img src="` + esc(art.Image) + `" alt="` + esc(art.Title) + `"/>`)
		}
		b.WriteString(`</header>`)
		b.WriteString(`<div class="article-body">` + markup.Render(art.Content) + `</div>`)
		b.WriteString(`</article>`)

		if len(page.Related) > 0 {
			b.WriteString(`<section class="related"><h2>Related Articles</h2><div class="article-grid">`)
			for _, ra := range page.Related {
				writeArticleCard(b, ra)
			}
			b.WriteString(`</div></section>`)
		}

		writeFooter(b, page.Site)
	})
}

func writeArticleCard(b *strings.Builder, art Article) {
	href := "/articles/" + PathEscape(art.Slug)
	b.WriteString(`<article class="article-card">`)
	b.WriteString(`<a href="` + href + `">`)
	if art.Image != "" {
		b.WriteString(`<img src="` + esc(art.Image) + `" alt="` + esc(art.Title) + `" loading="lazy"/>`)
	}
	b.WriteString(`<h3>` + esc(art.Title) + `</h3>`)
	b.WriteString(`</a>`)
	b.WriteString(`<span class="category-tag">` + esc(art.Category) + `</span>`)
	b.WriteString(`<p>` + esc(Truncate(art.Excerpt, 140)) + `</p>`)
	b.WriteString(`<a class="read-more" href="` + href + `">Read Article &rarr;</a>`)
	b.WriteString(`</article>`)
}
