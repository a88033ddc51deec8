package affliora

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/affliora/affliora/views"
)

// SiteConfig holds all configuration for an affliora site.
type SiteConfig struct {
	Name        string // Site name (default "Affliora")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/affliora.db")

	AnalyticsEnabled      bool   // Enable view/click telemetry (default true via NewSiteConfig)
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	AdminEmail    string // Required: admin login email
	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	ConvertKitAPIKey string // Server-held newsletter API key; empty disables forwarding
	ConvertKitFormID string

	CloudinaryURL    string // cloudinary://... credential URL; empty falls back to local uploads
	CloudinaryFolder string // Upload folder on Cloudinary (default "affliora")

	CatalogCacheTTL time.Duration // Catalog cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Affliora"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/affliora.db"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.CloudinaryFolder == "" {
		c.CloudinaryFolder = "affliora"
	}
	if c.CatalogCacheTTL == 0 {
		c.CatalogCacheTTL = 5 * time.Minute
	}
}

// siteConfig projects the server config onto the subset templates need.
func (c SiteConfig) siteConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Author:      c.Author,
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithHTTPClient overrides the outbound HTTP client used for the newsletter
// relay. Mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(a *App) {
		a.httpClient = client
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("affliora: required environment variable %s is not set", key)
	}
	return v
}
