package views

// SiteConfig holds site-wide settings populated from environment variables.
// Every handler passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string // SITE_NAME  (default "Affliora")
	URL         string // SITE_URL   (default "http://localhost:3000")
	Description string // SITE_DESCRIPTION
	Author      string // SITE_AUTHOR
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	Image       string
	URL         string // canonical + og:url
	OGType      string // "website", "article" or "product"
}

// Product is a catalog record pointing at an external affiliate offer.
// The store assigns the ID; the slug is derived from the name and is not
// guaranteed unique.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Category    string `json:"category"`
	Visible     bool   `json:"visible"`
	Featured    bool   `json:"featured"`
	Slug        string `json:"slug"`
	Clicks      int    `json:"clicks"`
	LastClicked string `json:"lastClicked,omitempty"`
	CreatedAt   string `json:"createdAt"` // RFC 3339
}

// Article is a long-form content record with lightweight inline markup in
// its body.
type Article struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Excerpt   string `json:"excerpt"`
	Image     string `json:"image,omitempty"`
	Category  string `json:"category"`
	Published bool   `json:"published"`
	Slug      string `json:"slug"`
	Author    string `json:"author,omitempty"`
	CreatedAt string `json:"createdAt"` // RFC 3339
}

// Image is metadata for an uploaded catalog image. URL is the public
// location returned by the storage backend.
type Image struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	URL          string `json:"url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int    `json:"size"`
	UploadedAt   string `json:"uploadedAt"`
}

// ActivityEntry is one row of the admin audit trail.
type ActivityEntry struct {
	Action    string
	Details   string
	User      string
	CreatedAt string
}
