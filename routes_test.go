package affliora

import (
	"net/url"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantKind RouteKind
		wantID   string
	}{
		{"root", "/", RouteCatalog, ""},
		{"root with filters", "/?category=Tools&page=2", RouteCatalog, ""},
		{"unknown path", "/nonsense", RouteCatalog, ""},
		{"products index", "/products", RouteCatalog, ""},
		{"products index trailing slash", "/products/", RouteCatalog, ""},
		{"articles index", "/articles", RouteArticlesIndex, ""},
		{"articles index trailing slash", "/articles/", RouteArticlesIndex, ""},
		{"article by slug", "/articles/ten-tips", RouteArticleDetail, "ten-tips"},
		{"product by slug", "/products/go-course", RouteProductDetail, "go-course"},
		{"legacy article hash", "/#article-abc123", RouteArticleDetail, "abc123"},
		{"legacy product hash", "/#product-xyz", RouteProductDetail, "xyz"},
		{"legacy articles hash", "/#articles", RouteArticlesIndex, ""},
		{"empty hash id falls through", "/#product-", RouteCatalog, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(mustParse(t, tt.url), false)
			if got.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.ID != tt.wantID {
				t.Errorf("id = %q, want %q", got.ID, tt.wantID)
			}
		})
	}
}

func TestResolveAdmin(t *testing.T) {
	for _, raw := range []string{"/admin", "/admin/", "/admin/images", "/#admin"} {
		if got := Resolve(mustParse(t, raw), false); got.Kind != RouteAdminLogin {
			t.Errorf("Resolve(%q, unauthenticated) = %v, want admin login", raw, got.Kind)
		}
		if got := Resolve(mustParse(t, raw), true); got.Kind != RouteAdminDashboard {
			t.Errorf("Resolve(%q, authenticated) = %v, want admin dashboard", raw, got.Kind)
		}
	}
}

func TestResolveAdminWinsOverHash(t *testing.T) {
	// Admin takes precedence over any other fragment pattern.
	got := Resolve(mustParse(t, "/admin/#product-5"), true)
	if got.Kind != RouteAdminDashboard {
		t.Errorf("kind = %v, want admin dashboard", got.Kind)
	}
}
