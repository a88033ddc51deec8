package views

import (
	"strings"

	"github.com/a-h/templ"
)

// ArticlesIndex renders the paginated articles grid.
func ArticlesIndex(page ArticlesPage) templ.Component {
	return component(func(b *strings.Builder) {
		writeHead(b, page.Site, page.Meta, WebsiteJsonLD(page.Site))

		b.WriteString(`<section class="articles-index">`)
		b.WriteString(`<h1>Articles</h1>`)
		writeSearchForm(b, "/articles", page.ActiveCategory, page.Query)
		writeCategoryFilter(b, "/articles", page.Categories, page.ActiveCategory, page.Query)

		if len(page.Articles) == 0 {
			b.WriteString(`<p class="empty">No articles found.</p>`)
		} else {
			b.WriteString(`<div class="article-grid">`)
			for _, art := range page.Articles {
				writeArticleCard(b, art)
			}
			b.WriteString(`</div>`)
		}
		writePagination(b, "/articles", page.ActiveCategory, page.Query, page.Page, page.TotalPages)
		b.WriteString(`</section>`)

		writeFooter(b, page.Site)
	})
}
