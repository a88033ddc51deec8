package affliora

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/affliora/affliora/analytics"
	"github.com/affliora/affliora/views"
)

// dispatch is the single entry point for page GETs. Resolve picks the view;
// the handler renders it. Legacy hash URLs from the old frontend resolve to
// the same views as the canonical paths.
func (a *App) dispatch(c echo.Context) error {
	route := Resolve(c.Request().URL, IsAdmin(c))
	switch route.Kind {
	case RouteProductDetail:
		return a.renderProduct(c, route.ID)
	case RouteArticleDetail:
		return a.renderArticle(c, route.ID)
	case RouteArticlesIndex:
		return a.renderArticlesIndex(c)
	case RouteAdminLogin:
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	case RouteAdminDashboard:
		return a.renderAdminDashboard(c, c.QueryParam("msg"))
	default:
		return a.renderHome(c)
	}
}

func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (a *App) renderHome(c echo.Context) error {
	products, err := a.Cache.ListProducts()
	if err != nil {
		return err
	}
	category := c.QueryParam("category")
	query := c.QueryParam("q")
	page := pageParam(c)

	filtered := FilterProducts(products, category, query)
	return Render(c, a.Views.Home(views.HomePage{
		Site: a.Config.siteConfig(),
		Meta: views.PageMeta{
			Title:       a.Config.Name,
			Description: a.Config.Description,
			URL:         a.Config.URL,
			OGType:      "website",
		},
		Featured:       FeaturedProduct(products),
		Products:       Paginate(filtered, page, ProductPageSize),
		Categories:     ProductCategories,
		ActiveCategory: category,
		Query:          query,
		Page:           page,
		TotalPages:     TotalPages(len(filtered), ProductPageSize),
	}))
}

func (a *App) renderProduct(c echo.Context, key string) error {
	p, err := a.Cache.FindProduct(key)
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	if !p.Visible && !IsAdmin(c) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}

	go a.recordView(analytics.KindProduct, p.ID, c.RealIP(), c.Request().Referer())

	products, err := a.Cache.ListProducts()
	if err != nil {
		return err
	}
	related := relatedProducts(products, p, 3)
	return Render(c, a.Views.ProductDetail(views.ProductPage{
		Site: a.Config.siteConfig(),
		Meta: views.PageMeta{
			Title:       p.Name + " | " + a.Config.Name,
			Description: p.Description,
			Image:       p.Image,
			URL:         BuildURL(a.Config.URL, "products", p.Slug),
			OGType:      "product",
		},
		Product: p,
		Related: related,
	}))
}

func (a *App) renderArticle(c echo.Context, key string) error {
	art, err := a.Cache.FindArticle(key)
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	if !art.Published && !IsAdmin(c) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}

	go a.recordView(analytics.KindArticle, art.ID, c.RealIP(), c.Request().Referer())

	articles, err := a.Cache.ListArticles()
	if err != nil {
		return err
	}
	related := relatedArticles(articles, art, 3)
	return Render(c, a.Views.ArticleDetail(views.ArticlePage{
		Site: a.Config.siteConfig(),
		Meta: views.PageMeta{
			Title:       art.Title + " | " + a.Config.Name,
			Description: art.Excerpt,
			Image:       art.Image,
			URL:         BuildURL(a.Config.URL, "articles", art.Slug),
			OGType:      "article",
		},
		Article: art,
		Related: related,
	}))
}

func (a *App) renderArticlesIndex(c echo.Context) error {
	articles, err := a.Cache.ListArticles()
	if err != nil {
		return err
	}
	category := c.QueryParam("category")
	query := c.QueryParam("q")
	page := pageParam(c)

	filtered := FilterArticles(articles, category, query)
	return Render(c, a.Views.ArticlesIndex(views.ArticlesPage{
		Site: a.Config.siteConfig(),
		Meta: views.PageMeta{
			Title:       "Articles | " + a.Config.Name,
			Description: a.Config.Description,
			URL:         BuildURL(a.Config.URL, "articles"),
			OGType:      "website",
		},
		Articles:       Paginate(filtered, page, ArticlePageSize),
		Categories:     ArticleCategories,
		ActiveCategory: category,
		Query:          query,
		Page:           page,
		TotalPages:     TotalPages(len(filtered), ArticlePageSize),
	}))
}

// handleProductGo bumps the click counter and redirects to the affiliate
// link. The redirect is issued regardless of whether the bookkeeping
// succeeded.
func (a *App) handleProductGo(c echo.Context) error {
	key := c.Param("key")
	p, err := a.Cache.FindProduct(key)
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}

	if err := a.Store.IncrementClicks(p.ID); err != nil {
		c.Logger().Errorf("affliora: increment clicks for %s: %v", p.ID, err)
	} else {
		a.Cache.Invalidate()
	}
	if a.recorder != nil {
		go a.recorder.RecordClick(p.ID, p.Link, c.Request().Referer())
	}

	return c.Redirect(http.StatusFound, p.Link)
}

func (a *App) recordView(kind analytics.Kind, id, visitor, referrer string) {
	if a.recorder == nil {
		return
	}
	a.recorder.RecordView(kind, id, visitor, referrer)
}

func relatedProducts(products []Product, current Product, n int) []Product {
	var out []Product
	for _, p := range products {
		if p.ID == current.ID || !p.Visible || p.Category != current.Category {
			continue
		}
		out = append(out, p)
		if len(out) == n {
			break
		}
	}
	return out
}

func relatedArticles(articles []Article, current Article, n int) []Article {
	var out []Article
	for _, art := range articles {
		if art.ID == current.ID || !art.Published || art.Category != current.Category {
			continue
		}
		out = append(out, art)
		if len(out) == n {
			break
		}
	}
	return out
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically from the configured URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
