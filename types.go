package affliora

import "github.com/affliora/affliora/views"

// Domain types are declared in the views package so templates can consume
// them without an import cycle; these aliases keep the public API here.
type (
	Product       = views.Product
	Article       = views.Article
	Image         = views.Image
	ActivityEntry = views.ActivityEntry
)

// CategoryAll is the sentinel category filter matching every record.
const CategoryAll = "All"

// ProductCategories is the fixed category set offered by the catalog filter
// and the admin form. The first entry is the all-products sentinel.
var ProductCategories = []string{
	CategoryAll,
	"Digital Products",
	"Courses",
	"E-books",
	"Tools",
	"Templates",
	"Services",
	"Other",
}

// ArticleCategories is the fixed category set for articles.
var ArticleCategories = []string{
	"Tips & Guides",
	"Reviews",
	"Tutorials",
	"News",
}
