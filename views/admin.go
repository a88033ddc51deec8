package views

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// AdminLogin renders the login form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return component(func(b *strings.Builder) {
		writeAdminHead(b, "Admin Login")
		b.WriteString(`<main class="admin-login">`)
		b.WriteString(`<h1>Admin Login</h1>`)
		if showError {
			b.WriteString(`<p class="error">Invalid email or password.</p>`)
		}
		b.WriteString(`<form method="post" action="/admin/login">`)
		writeCsrf(b, csrfToken)
		b.WriteString(`<label>Email <input type="email" name="email" required/></label>`)
		b.WriteString(`<label>Password <input type="password" name="password" required/></label>`)
		b.WriteString(`<button type="submit">Sign in</button>`)
		b.WriteString(`</form></main></body></html>`)
	})
}

// AdminDashboard renders the full admin surface: stats, both collections
// with edit forms, and the audit trail.
func AdminDashboard(page AdminPage) templ.Component {
	return component(func(b *strings.Builder) {
		writeAdminHead(b, "Dashboard")
		b.WriteString(`<main class="admin-dashboard">`)
		b.WriteString(`<header class="admin-header"><h1>Dashboard</h1>`)
		b.WriteString(`<nav><a href="/admin/images">Images</a>`)
		b.WriteString(`<form method="post" action="/admin/logout" class="inline">`)
		writeCsrf(b, page.CsrfToken)
		b.WriteString(`<button type="submit">Log out</button></form></nav></header>`)

		if page.Message != "" {
			b.WriteString(`<p class="flash">` + esc(page.Message) + `</p>`)
		}

		writeAdminStats(b, page)
		writeProductAdmin(b, page)
		writeArticleAdmin(b, page)
		writeActivityLog(b, page.Activity)

		b.WriteString(`</main></body></html>`)
	})
}

func writeAdminHead(b *strings.Builder, title string) {
	b.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
	b.WriteString(`<meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	b.WriteString(`<meta name="robots" content="noindex"/>`)
	b.WriteString("<title>" + esc(title) + "</title>")
	b.WriteString(`<link rel="stylesheet" href="/public/admin.css"/>`)
	b.WriteString("</head><body>")
}

func writeCsrf(b *strings.Builder, token string) {
	b.WriteString(`<input type="hidden" name="_csrf" value="` + esc(token) + `"/>`)
}

func writeAdminStats(b *strings.Builder, page AdminPage) {
	b.WriteString(`<section class="stats">`)
	writeStat(b, "Products", strconv.Itoa(len(page.Products)))
	writeStat(b, "Articles", strconv.Itoa(len(page.Articles)))
	writeStat(b, "Total Views", strconv.Itoa(page.TotalViews))
	writeStat(b, "Total Clicks", strconv.Itoa(page.TotalClicks))
	writeStat(b, "Subscribers", strconv.Itoa(page.Subscribers))
	b.WriteString(`</section>`)

	if len(page.TopProducts) > 0 {
		b.WriteString(`<section class="top-products"><h2>Top Products</h2><ol>`)
		for _, p := range page.TopProducts {
			b.WriteString(`<li>` + esc(p.Name) + ` <span class="count">` + strconv.Itoa(p.Clicks) + ` clicks</span>`)
			if page.ProductViews != nil {
				b.WriteString(` <span class="count">` + strconv.Itoa(page.ProductViews[p.ID]) + ` views / ` +
					strconv.Itoa(page.ProductClicks[p.ID]) + ` tracked clicks</span>`)
			}
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ol></section>`)
	}

	if len(page.TopReferrers) > 0 {
		b.WriteString(`<section class="referrers"><h2>Traffic Sources</h2><ol>`)
		for _, r := range page.TopReferrers {
			b.WriteString(`<li>` + esc(r.Source) + ` <span class="count">` + strconv.Itoa(r.Count) + `</span></li>`)
		}
		b.WriteString(`</ol></section>`)
	}
}

func writeStat(b *strings.Builder, label, value string) {
	b.WriteString(`<div class="stat"><span class="stat-value">` + value + `</span><span class="stat-label">` + esc(label) + `</span></div>`)
}

func writeProductAdmin(b *strings.Builder, page AdminPage) {
	b.WriteString(`<section class="admin-products"><h2>Products</h2>`)
	draft := Product{Visible: true}
	if page.ProductDraft != nil {
		draft = *page.ProductDraft
		b.WriteString(`<p class="form-error">` + esc(page.FormError) + `</p>`)
	}
	writeProductForm(b, draft, page.ProductCategories, page.CsrfToken)
	b.WriteString(`<table><thead><tr><th>Name</th><th>Category</th><th>Clicks</th><th>Status</th><th></th></tr></thead><tbody>`)
	for _, p := range page.Products {
		b.WriteString(`<tr><td>` + esc(p.Name) + `</td><td>` + esc(p.Category) + `</td>`)
		b.WriteString(`<td>` + strconv.Itoa(p.Clicks) + `</td>`)
		b.WriteString(`<td>` + productStatus(p) + `</td><td>`)
		b.WriteString(`<details><summary>Edit</summary>`)
		writeProductForm(b, p, page.ProductCategories, page.CsrfToken)
		b.WriteString(`</details>`)
		b.WriteString(`<form method="post" action="/admin/products/` + PathEscape(p.ID) + `/delete" class="inline" onsubmit="return confirm('Delete this product?')">`)
		writeCsrf(b, page.CsrfToken)
		b.WriteString(`<button type="submit" class="danger">Delete</button></form>`)
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</tbody></table></section>`)
}

func productStatus(p Product) string {
	switch {
	case !p.Visible:
		return "Hidden"
	case p.Featured:
		return "Featured"
	default:
		return "Visible"
	}
}

// writeProductForm emits the create/edit form. Checkboxes carry
// value="true" so the server-side bool parser accepts them.
func writeProductForm(b *strings.Builder, p Product, categories []string, csrfToken string) {
	b.WriteString(`<form method="post" action="/admin/products" class="record-form">`)
	writeCsrf(b, csrfToken)
	b.WriteString(`<input type="hidden" name="id" value="` + esc(p.ID) + `"/>`)
	b.WriteString(`<label>Name <input type="text" name="name" value="` + esc(p.Name) + `" required/></label>`)
	b.WriteString(`<label>Image URL <input type="text" name="image" value="` + esc(p.Image) + `" required/></label>`)
	b.WriteString(`<label>Description <textarea name="description" required>` + esc(p.Description) + `</textarea></label>`)
	b.WriteString(`<label>Affiliate Link <input type="url" name="link" value="` + esc(p.Link) + `" required/></label>`)
	writeCategorySelect(b, categories, p.Category)
	b.WriteString(`<label>Slug <input type="text" name="slug" value="` + esc(p.Slug) + `" placeholder="auto from name"/></label>`)
	writeCheckbox(b, "visible", "Visible", p.Visible)
	writeCheckbox(b, "featured", "Featured", p.Featured)
	b.WriteString(`<button type="submit">Save Product</button>`)
	b.WriteString(`</form>`)
}

func writeArticleAdmin(b *strings.Builder, page AdminPage) {
	b.WriteString(`<section class="admin-articles"><h2>Articles</h2>`)
	draft := Article{Published: true}
	if page.ArticleDraft != nil {
		draft = *page.ArticleDraft
		b.WriteString(`<p class="form-error">` + esc(page.FormError) + `</p>`)
	}
	writeArticleForm(b, draft, page.ArticleCategories, page.CsrfToken)
	b.WriteString(`<table><thead><tr><th>Title</th><th>Category</th><th>Status</th><th></th></tr></thead><tbody>`)
	for _, art := range page.Articles {
		status := "Published"
		if !art.Published {
			status = "Draft"
		}
		b.WriteString(`<tr><td>` + esc(art.Title) + `</td><td>` + esc(art.Category) + `</td>`)
		b.WriteString(`<td>` + status + `</td><td>`)
		b.WriteString(`<details><summary>Edit</summary>`)
		writeArticleForm(b, art, page.ArticleCategories, page.CsrfToken)
		b.WriteString(`</details>`)
		b.WriteString(`<form method="post" action="/admin/articles/` + PathEscape(art.ID) + `/delete" class="inline" onsubmit="return confirm('Delete this article?')">`)
		writeCsrf(b, page.CsrfToken)
		b.WriteString(`<button type="submit" class="danger">Delete</button></form>`)
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</tbody></table></section>`)
}

func writeArticleForm(b *strings.Builder, art Article, categories []string, csrfToken string) {
	b.WriteString(`<form method="post" action="/admin/articles" class="record-form">`)
	writeCsrf(b, csrfToken)
	b.WriteString(`<input type="hidden" name="id" value="` + esc(art.ID) + `"/>`)
	b.WriteString(`<label>Title <input type="text" name="title" value="` + esc(art.Title) + `" required/></label>`)
	b.WriteString(`<label>Excerpt <textarea name="excerpt" required>` + esc(art.Excerpt) + `</textarea></label>`)
	b.WriteString(`<label>Content <textarea name="content" rows="12" required>` + esc(art.Content) + `</textarea></label>`)
	b.WriteString(`<label>Image URL <input type="text" name="image" value="` + esc(art.Image) + `"/></label>`)
	writeCategorySelect(b, categories, art.Category)
	b.WriteString(`<label>Author <input type="text" name="author" value="` + esc(art.Author) + `"/></label>`)
	b.WriteString(`<label>Slug <input type="text" name="slug" value="` + esc(art.Slug) + `" placeholder="auto from title"/></label>`)
	writeCheckbox(b, "published", "Published", art.Published)
	b.WriteString(`<button type="submit">Save Article</button>`)
	b.WriteString(`</form>`)
}

func writeActivityLog(b *strings.Builder, entries []ActivityEntry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString(`<section class="activity"><h2>Recent Activity</h2><table>`)
	b.WriteString(`<thead><tr><th>When</th><th>Actor</th><th>Action</th><th>Detail</th></tr></thead><tbody>`)
	for _, e := range entries {
		b.WriteString(`<tr><td>` + esc(FormatDate(e.CreatedAt)) + `</td>`)
		b.WriteString(`<td>` + esc(e.User) + `</td>`)
		b.WriteString(`<td>` + esc(e.Action) + `</td>`)
		b.WriteString(`<td>` + esc(e.Details) + `</td></tr>`)
	}
	b.WriteString(`</tbody></table></section>`)
}

func writeCategorySelect(b *strings.Builder, categories []string, selected string) {
	b.WriteString(`<label>Category <select name="category" required>`)
	for _, cat := range categories {
		if cat == "All" {
			continue
		}
		sel := ""
		if cat == selected {
			sel = ` selected`
		}
		b.WriteString(`<option value="` + esc(cat) + `"` + sel + `>` + esc(cat) + `</option>`)
	}
	b.WriteString(`</select></label>`)
}

func writeCheckbox(b *strings.Builder, name, label string, checked bool) {
	chk := ""
	if checked {
		chk = ` checked`
	}
	b.WriteString(`<label class="checkbox"><input type="checkbox" name="` + name + `" value="true"` + chk + `/> ` + esc(label) + `</label>`)
}

// AdminImages renders the upload manager.
func AdminImages(images []Image, csrfToken string) templ.Component {
	return component(func(b *strings.Builder) {
		writeAdminHead(b, "Images")
		b.WriteString(`<main class="admin-images">`)
		b.WriteString(`<header class="admin-header"><h1>Images</h1><nav><a href="/admin">Dashboard</a></nav></header>`)

		b.WriteString(`<form method="post" action="/admin/images/upload" enctype="multipart/form-data">`)
		writeCsrf(b, csrfToken)
		b.WriteString(`<input type="file" name="image" accept="image/*" required/>`)
		b.WriteString(`<button type="submit">Upload</button>`)
		b.WriteString(`</form>`)

		b.WriteString(`<div class="image-grid">`)
		for _, img := range images {
			b.WriteString(`<figure>`)
			b.WriteString(`<img src="` + esc(img.URL) + `" alt="` + esc(img.OriginalName) + `" loading="lazy"/>`)
			b.WriteString(`<figcaption>` + esc(img.Filename) + ` (` + strconv.Itoa(img.Width) + `&times;` + strconv.Itoa(img.Height) + `)</figcaption>`)
			b.WriteString(`<input type="text" readonly value="` + esc(img.URL) + `"/>`)
			b.WriteString(`<form method="post" action="/admin/images/` + PathEscape(img.Filename) + `/delete" class="inline" onsubmit="return confirm('Delete this image?')">`)
			writeCsrf(b, csrfToken)
			b.WriteString(`<button type="submit" class="danger">Delete</button></form>`)
			b.WriteString(`</figure>`)
		}
		b.WriteString(`</div></main></body></html>`)
	})
}
