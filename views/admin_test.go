package views

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func renderToString(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return b.String()
}

// A rejected product submission re-renders the dashboard with the admin's
// input still in the form, alongside the validation message.
func TestAdminDashboardPreservesProductDraft(t *testing.T) {
	page := AdminPage{
		ProductCategories: []string{"All", "Tech"},
		ArticleCategories: []string{"All", "Guides"},
		FormError:         "link: must be a valid URL",
		ProductDraft: &Product{
			Name:        "Go Course",
			Description: "Learn Go",
			Image:       "course.jpg",
			Link:        "not-a-url",
			Category:    "Tech",
		},
	}
	out := renderToString(t, AdminDashboard(page))

	if !strings.Contains(out, `value="Go Course"`) {
		t.Errorf("draft name not preserved in form: %q", out)
	}
	if !strings.Contains(out, `value="not-a-url"`) {
		t.Errorf("draft link not preserved in form: %q", out)
	}
	if !strings.Contains(out, `class="form-error"`) || !strings.Contains(out, "link: must be a valid URL") {
		t.Errorf("validation message not rendered: %q", out)
	}
}

func TestAdminDashboardPreservesArticleDraft(t *testing.T) {
	page := AdminPage{
		ProductCategories: []string{"All", "Tech"},
		ArticleCategories: []string{"All", "Guides"},
		FormError:         "excerpt: this field is required",
		ArticleDraft: &Article{
			Title:    "Ten Remote Tips",
			Content:  "Body text",
			Category: "Guides",
		},
	}
	out := renderToString(t, AdminDashboard(page))

	if !strings.Contains(out, `value="Ten Remote Tips"`) {
		t.Errorf("draft title not preserved in form: %q", out)
	}
	if !strings.Contains(out, "excerpt: this field is required") {
		t.Errorf("validation message not rendered: %q", out)
	}
}

func TestAdminDashboardTelemetryBlocks(t *testing.T) {
	page := AdminPage{
		TopProducts:   []Product{{ID: "p1", Name: "Go Course", Clicks: 7}},
		ProductViews:  map[string]int{"p1": 42},
		ProductClicks: map[string]int{"p1": 5},
		TopReferrers: []ReferrerCount{
			{Source: "google.com", Count: 12},
			{Source: "Direct", Count: 3},
		},
	}
	out := renderToString(t, AdminDashboard(page))

	if !strings.Contains(out, "42 views / 5 tracked clicks") {
		t.Errorf("per-product telemetry missing: %q", out)
	}
	if !strings.Contains(out, "Traffic Sources") || !strings.Contains(out, "google.com") {
		t.Errorf("traffic sources block missing: %q", out)
	}
}
