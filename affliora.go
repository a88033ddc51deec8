// Package affliora is an affiliate storefront engine built with Go, Echo,
// and templ. It serves a product catalog with filtering and pagination,
// long-form articles with lightweight inline markup, an admin dashboard,
// click and view telemetry, a newsletter relay, RSS, and a sitemap out of
// the box.
//
// Users provide their own templ components via the ViewFuncs struct, and
// affliora handles the handler logic, middleware, and database operations.
package affliora

import (
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/labstack/echo/v4"
	_ "modernc.org/sqlite"

	"github.com/affliora/affliora/analytics"
	"github.com/affliora/affliora/views"
)

// ViewFuncs holds user-provided templ components that the engine calls when
// rendering pages. This is the inversion-of-control mechanism that lets
// users own and customize all templates.
type ViewFuncs struct {
	Home           func(page views.HomePage) templ.Component
	ProductDetail  func(page views.ProductPage) templ.Component
	ArticleDetail  func(page views.ArticlePage) templ.Component
	ArticlesIndex  func(page views.ArticlesPage) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(page views.AdminPage) templ.Component
	AdminImages    func(images []Image, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central affliora application. It wires together the store,
// cache, recorder, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *CatalogCache
	Views  ViewFuncs
	Images ImageStore

	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	recorder       *analytics.Recorder
	httpClient     *http.Client
	convertKitBase string
	validate       *validator.Validate
	formDecoder    *schema.Decoder
	customRoutes   []func(*App)
	staticDir      string
}

// New creates an affliora App with the given configuration and view functions.
func New(cfg SiteConfig, vf ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:         cfg,
		Echo:           echo.New(),
		Views:          vf,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		convertKitBase: defaultConvertKitBase,
		validate:       validator.New(),
		formDecoder:    newFormDecoder(),
		staticDir:      "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, routes, and starts the
// server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Config.AdminEmail == "" {
		return fmt.Errorf("affliora: AdminEmail is required")
	}
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("affliora: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("affliora: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("affliora: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewCatalogCache(a.Store, a.Config.CatalogCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("affliora: init analytics: %w", err)
		}
		a.analyticsStore = analyticsStore
		a.recorder = analytics.NewRecorder(analyticsStore, 30*time.Minute)
		stopCleanup := analyticsStore.StartCleanupScheduler(365, 24*time.Hour)
		defer stopCleanup()
	}

	if a.Images == nil {
		if a.Config.CloudinaryURL != "" {
			images, err := NewCloudinaryImageStore(a.Config.CloudinaryURL, a.Config.CloudinaryFolder)
			if err != nil {
				return err
			}
			a.Images = images
		} else {
			a.Images = &LocalImageStore{Dir: a.staticDir}
		}
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// All page views go through the dispatcher so legacy hash URLs and
	// canonical paths resolve identically.
	e.GET("/", a.dispatch)
	e.GET("/products", a.dispatch)
	e.GET("/articles", a.dispatch)
	e.GET("/articles/:key", a.dispatch)
	e.GET("/products/:key", a.dispatch)
	e.GET("/products/:key/go", a.handleProductGo)

	// Public JSON API
	e.GET("/api/products", a.handleAPIProducts)
	e.GET("/api/articles", a.handleAPIArticles)
	e.POST("/api/newsletter", a.handleNewsletter)
	e.OPTIONS("/api/newsletter", a.handleNewsletterPreflight)

	// Admin
	e.GET("/admin", a.dispatch)
	e.POST("/admin/login", a.handleAdminLogin)
	e.POST("/admin/logout", handleAdminLogout)
	e.POST("/admin/products", a.handleProductSave)
	e.POST("/admin/products/:id/delete", a.handleProductDelete)
	e.POST("/admin/articles", a.handleArticleSave)
	e.POST("/admin/articles/:id/delete", a.handleArticleDelete)
	e.GET("/admin/images", a.handleImageList)
	e.POST("/admin/images/upload", a.handleImageUpload)
	e.POST("/admin/images/:filename/delete", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.analyticsStore != nil {
		a.analyticsStore.Close()
	}
	return nil
}
