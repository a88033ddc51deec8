package views

import (
	"strings"

	"github.com/a-h/templ"
)

// NotFound renders the 404 page. Missing records are a terminal view, not an
// error condition.
func NotFound() templ.Component {
	return statusPage("404", "Page not found", "The page you are looking for does not exist or was removed.")
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return statusPage("500", "Something went wrong", "An unexpected error occurred. Please try again later.")
}

func statusPage(code, title, detail string) templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
		b.WriteString(`<meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		b.WriteString("<title>" + esc(title) + "</title>")
		b.WriteString(`<link rel="stylesheet" href="/public/styles.css"/>`)
		b.WriteString("</head><body>")
		b.WriteString(`<main class="status-page">`)
		b.WriteString(`<h1>` + esc(code) + `</h1>`)
		b.WriteString(`<h2>` + esc(title) + `</h2>`)
		b.WriteString(`<p>` + esc(detail) + `</p>`)
		b.WriteString(`<a class="button" href="/">Back to home</a>`)
		b.WriteString(`</main></body></html>`)
	})
}
