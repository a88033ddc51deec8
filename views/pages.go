package views

// HomePage is the data for the storefront landing page: the featured banner,
// the filtered product grid and its pagination state.
type HomePage struct {
	Site           SiteConfig
	Meta           PageMeta
	Featured       *Product
	Products       []Product
	Categories     []string
	ActiveCategory string
	Query          string
	Page           int
	TotalPages     int
}

// ProductPage is the data for a single product view.
type ProductPage struct {
	Site    SiteConfig
	Meta    PageMeta
	Product Product
	Related []Product
}

// ArticlePage is the data for a single article view.
type ArticlePage struct {
	Site    SiteConfig
	Meta    PageMeta
	Article Article
	Related []Article
}

// ArticlesPage is the data for the paginated articles grid.
type ArticlesPage struct {
	Site           SiteConfig
	Meta           PageMeta
	Articles       []Article
	Categories     []string
	ActiveCategory string
	Query          string
	Page           int
	TotalPages     int
}

// AdminPage is the data for the admin dashboard: full collections (drafts
// and hidden records included), aggregate stats and the audit trail.
type AdminPage struct {
	Products          []Product
	Articles          []Article
	TotalClicks       int
	TotalViews        int
	TopProducts       []Product
	ProductViews      map[string]int // telemetry views per top product id
	ProductClicks     map[string]int // telemetry clicks per top product id
	TopReferrers      []ReferrerCount
	Subscribers       int
	Activity          []ActivityEntry
	ProductCategories []string
	ArticleCategories []string
	Message           string
	CsrfToken         string

	// Set when a create/edit submission failed validation: the form is
	// re-rendered with the admin's input intact.
	FormError    string
	ProductDraft *Product
	ArticleDraft *Article
}

// ReferrerCount is one row of the dashboard traffic-sources block, the
// referrer already collapsed to a display domain.
type ReferrerCount struct {
	Source string
	Count  int
}
