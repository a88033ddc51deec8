package markup

import (
	"strings"
	"testing"
)

func TestRenderBold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"text **bold** more", "text <strong>bold</strong> more"},
		{"**a** and **b**", "<strong>a</strong> and <strong>b</strong>"},
	}
	for _, tt := range tests {
		got := Render(tt.input)
		if got != tt.expected {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderItalic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"*italic*", "<em>italic</em>"},
		{"text *italic* more", "text <em>italic</em> more"},
	}
	for _, tt := range tests {
		got := Render(tt.input)
		if got != tt.expected {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderBoldNotMatchedAsItalic(t *testing.T) {
	got := Render("**bold**")
	if strings.Contains(got, "<em>") {
		t.Errorf("Render(**bold**) = %q, should not contain <em>", got)
	}
}

func TestRenderNewlines(t *testing.T) {
	got := Render("line one\nline two")
	want := "line one<br/>line two"
	if got != want {
		t.Errorf("Render newline = %q, want %q", got, want)
	}
}

// Tokens must link to the canonical detail paths. A fragment href would
// never reach the server, leaving the link inert.
func TestRenderProductToken(t *testing.T) {
	got := Render("see #product-42 here")
	if !strings.Contains(got, `<a href="/products/42" class="ref ref-product">View Product →</a>`) {
		t.Errorf("product token not linked: %q", got)
	}
	if strings.Contains(got, `href="#`) {
		t.Errorf("token rendered as fragment href: %q", got)
	}
}

func TestRenderArticleToken(t *testing.T) {
	got := Render("see #article-abc123 here")
	if !strings.Contains(got, `<a href="/articles/abc123" class="ref ref-article">Read Article →</a>`) {
		t.Errorf("article token not linked: %q", got)
	}
	if strings.Contains(got, `href="#`) {
		t.Errorf("token rendered as fragment href: %q", got)
	}
}

func TestRenderBareURL(t *testing.T) {
	got := Render("visit https://example.com/page today")
	want := `visit <a href="https://example.com/page" target="_blank" rel="noopener noreferrer">https://example.com/page</a> today`
	if got != want {
		t.Errorf("Render bare URL = %q, want %q", got, want)
	}
}

func TestRenderMixed(t *testing.T) {
	got := Render("Check **this** out: https://x.com and #product-42")
	if !strings.Contains(got, "<strong>this</strong>") {
		t.Errorf("missing bold: %q", got)
	}
	if !strings.Contains(got, `<a href="https://x.com" target="_blank" rel="noopener noreferrer">https://x.com</a>`) {
		t.Errorf("missing URL anchor: %q", got)
	}
	if !strings.Contains(got, `class="ref ref-product"`) {
		t.Errorf("missing product anchor: %q", got)
	}
	assertNoNestedAnchors(t, got)
}

// A cross-reference token immediately adjacent to a bare URL must be linked
// as a token, not swallowed into the URL anchor.
func TestRenderTokenAdjacentToURL(t *testing.T) {
	got := Render("https://x.com/#product-5")
	if strings.Count(got, "<a ") != 2 {
		t.Errorf("want separate URL and token anchors, got %q", got)
	}
	assertNoNestedAnchors(t, got)
}

func TestRenderEscapesHTML(t *testing.T) {
	got := Render(`<script>alert("x")</script>`)
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML leaked through: %q", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(""); got != "" {
		t.Errorf("Render(\"\") = %q, want empty", got)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"/products/abc/", "/products/abc/"},
		{"#product-1", "#product-1"},
		{"javascript:alert(1)", ""},
		{"", ""},
		{"not a url", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.expected {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

// assertNoNestedAnchors fails if an <a> opens before the previous one closed.
func assertNoNestedAnchors(t *testing.T, s string) {
	t.Helper()
	depth := 0
	for i := 0; i < len(s); i++ {
		if strings.HasPrefix(s[i:], "<a ") {
			depth++
			if depth > 1 {
				t.Fatalf("nested anchor in %q", s)
			}
		}
		if strings.HasPrefix(s[i:], "</a>") {
			depth--
		}
	}
}
