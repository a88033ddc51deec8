package affliora

import (
	"net/url"
	"strings"
)

// RouteKind enumerates the mutually exclusive page views.
type RouteKind int

const (
	RouteCatalog RouteKind = iota
	RouteProductDetail
	RouteArticleDetail
	RouteArticlesIndex
	RouteAdminLogin
	RouteAdminDashboard
)

// String names the route kind for logging.
func (k RouteKind) String() string {
	switch k {
	case RouteProductDetail:
		return "product-detail"
	case RouteArticleDetail:
		return "article-detail"
	case RouteArticlesIndex:
		return "articles-index"
	case RouteAdminLogin:
		return "admin-login"
	case RouteAdminDashboard:
		return "admin-dashboard"
	default:
		return "catalog"
	}
}

// Route is the dispatch result: which view to render and, for detail views,
// the identifier extracted verbatim from the URL, a slug or a record id
// with no validation beyond the pattern match.
type Route struct {
	Kind RouteKind
	ID   string
}

// Resolve maps a URL onto a page view with a single ordered match. Admin
// wins first (path /admin or the #admin hash, split into login vs dashboard
// by the session flag), then the legacy hash patterns article-<id>,
// product-<id> and the articles token carried over from the hash-routed
// frontend, then the canonical paths. Everything else is the catalog.
func Resolve(u *url.URL, authed bool) Route {
	p := strings.TrimSuffix(u.Path, "/")
	frag := u.Fragment

	if p == "/admin" || strings.HasPrefix(p, "/admin/") || frag == "admin" {
		if authed {
			return Route{Kind: RouteAdminDashboard}
		}
		return Route{Kind: RouteAdminLogin}
	}
	if id, ok := strings.CutPrefix(frag, "article-"); ok && id != "" {
		return Route{Kind: RouteArticleDetail, ID: id}
	}
	if id, ok := strings.CutPrefix(frag, "product-"); ok && id != "" {
		return Route{Kind: RouteProductDetail, ID: id}
	}
	if frag == "articles" {
		return Route{Kind: RouteArticlesIndex}
	}

	switch {
	case p == "/products":
		// The products index is the catalog; the sitemap advertises it.
		return Route{Kind: RouteCatalog}
	case p == "/articles":
		return Route{Kind: RouteArticlesIndex}
	case strings.HasPrefix(p, "/articles/"):
		return Route{Kind: RouteArticleDetail, ID: strings.TrimPrefix(p, "/articles/")}
	case strings.HasPrefix(p, "/products/"):
		return Route{Kind: RouteProductDetail, ID: strings.TrimPrefix(p, "/products/")}
	}
	return Route{Kind: RouteCatalog}
}
