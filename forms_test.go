package affliora

import (
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func testFormsApp() *App {
	return &App{
		validate:    validator.New(),
		formDecoder: newFormDecoder(),
	}
}

func TestDecodeProductForm(t *testing.T) {
	a := testFormsApp()

	values := url.Values{
		"name":        {"Go Course"},
		"image":       {"https://example.com/img.jpg"},
		"description": {"Learn Go."},
		"link":        {"https://example.com/buy"},
		"category":    {"Courses"},
		"visible":     {"true"},
		"featured":    {"true"},
	}

	var form ProductForm
	msg, err := a.decodeAndValidate(values, &form)
	if err != nil {
		t.Fatalf("decodeAndValidate failed: %v", err)
	}
	if msg != "" {
		t.Fatalf("unexpected validation message: %q", msg)
	}
	p := form.product()
	if !p.Visible || !p.Featured {
		t.Errorf("checkbox values not decoded: %+v", p)
	}
	if p.Name != "Go Course" {
		t.Errorf("Name = %q", p.Name)
	}
}

func TestDecodeProductFormUncheckedBoxes(t *testing.T) {
	a := testFormsApp()

	// Unchecked checkboxes are absent from the form entirely.
	values := url.Values{
		"name":        {"Go Course"},
		"image":       {"https://example.com/img.jpg"},
		"description": {"Learn Go."},
		"link":        {"https://example.com/buy"},
		"category":    {"Courses"},
	}

	var form ProductForm
	msg, err := a.decodeAndValidate(values, &form)
	if err != nil {
		t.Fatalf("decodeAndValidate failed: %v", err)
	}
	if msg != "" {
		t.Fatalf("unexpected validation message: %q", msg)
	}
	if form.Visible || form.Featured {
		t.Errorf("absent checkboxes should decode false: %+v", form)
	}
}

func TestProductFormValidation(t *testing.T) {
	a := testFormsApp()

	tests := []struct {
		name     string
		mutate   func(url.Values)
		wantPart string
	}{
		{"missing link", func(v url.Values) { v.Del("link") }, "link"},
		{"bad link", func(v url.Values) { v.Set("link", "not-a-url") }, "invalid URL"},
		{"missing image", func(v url.Values) { v.Del("image") }, "image"},
		{"missing name", func(v url.Values) { v.Del("name") }, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{
				"name":        {"Go Course"},
				"image":       {"https://example.com/img.jpg"},
				"description": {"Learn Go."},
				"link":        {"https://example.com/buy"},
				"category":    {"Courses"},
			}
			tt.mutate(values)

			var form ProductForm
			msg, err := a.decodeAndValidate(values, &form)
			if err != nil {
				t.Fatalf("decodeAndValidate failed: %v", err)
			}
			if msg == "" {
				t.Fatal("expected a validation message")
			}
			if !strings.Contains(msg, tt.wantPart) {
				t.Errorf("message %q does not mention %q", msg, tt.wantPart)
			}
		})
	}
}

func TestArticleFormValidation(t *testing.T) {
	a := testFormsApp()

	values := url.Values{
		"title":    {"Remote Work Tips"},
		"content":  {"Some **bold** advice."},
		"excerpt":  {"Advice."},
		"category": {"Tips & Guides"},
	}

	var form ArticleForm
	msg, err := a.decodeAndValidate(values, &form)
	if err != nil {
		t.Fatalf("decodeAndValidate failed: %v", err)
	}
	if msg != "" {
		t.Fatalf("unexpected validation message: %q", msg)
	}
	art := form.article()
	if art.Title != "Remote Work Tips" || art.Category != "Tips & Guides" {
		t.Errorf("decoded article = %+v", art)
	}
}
