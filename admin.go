package affliora

import (
	"crypto/subtle"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/affliora/affliora/analytics"
	"github.com/affliora/affliora/views"
)

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	pass := c.FormValue("password")

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(strings.ToLower(a.Config.AdminEmail))) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1
	if emailOK && passOK {
		if err := setAdminSession(c, email); err != nil {
			return err
		}
		a.logActivity(c, "login", email)
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	a.loginLimiter.Record(c.RealIP())
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	page, err := a.buildAdminPage(c)
	if err != nil {
		return err
	}
	page.Message = msg
	return Render(c, a.Views.AdminDashboard(page))
}

func (a *App) buildAdminPage(c echo.Context) (views.AdminPage, error) {
	products, err := a.Store.ListProducts()
	if err != nil {
		return views.AdminPage{}, err
	}
	articles, err := a.Store.ListArticles()
	if err != nil {
		return views.AdminPage{}, err
	}
	subscribers, err := a.Store.CountSubscribers()
	if err != nil {
		return views.AdminPage{}, err
	}
	activity, err := a.Store.RecentActivity(20)
	if err != nil {
		return views.AdminPage{}, err
	}

	page := views.AdminPage{
		Products:          products,
		Articles:          articles,
		TotalClicks:       TotalClicks(products),
		TopProducts:       TopProducts(products, 5),
		Subscribers:       subscribers,
		Activity:          activity,
		ProductCategories: ProductCategories,
		ArticleCategories: ArticleCategories,
		CsrfToken:         CsrfToken(c),
	}

	// Telemetry blocks are best-effort: a failed analytics read leaves the
	// stat at zero rather than failing the dashboard.
	if a.analyticsStore != nil {
		if n, err := a.analyticsStore.TotalViews(); err == nil {
			page.TotalViews = n
		}
		page.TopReferrers = a.topReferrers(10)
		page.ProductViews = map[string]int{}
		page.ProductClicks = map[string]int{}
		for _, p := range page.TopProducts {
			if n, err := a.analyticsStore.CountViews(p.ID); err == nil {
				page.ProductViews[p.ID] = n
			}
			if n, err := a.analyticsStore.CountClicks(p.ID); err == nil {
				page.ProductClicks[p.ID] = n
			}
		}
	}
	return page, nil
}

// topReferrers collapses the raw view-log sources to display domains,
// merging rows that clean to the same domain and keeping count order.
func (a *App) topReferrers(n int) []views.ReferrerCount {
	sources, err := a.analyticsStore.TopSources(n)
	if err != nil {
		return nil
	}
	var out []views.ReferrerCount
	index := map[string]int{}
	for _, sc := range sources {
		domain := analytics.CleanReferrer(sc.Source)
		if i, ok := index[domain]; ok {
			out[i].Count += sc.Count
			continue
		}
		index[domain] = len(out)
		out = append(out, views.ReferrerCount{Source: domain, Count: sc.Count})
	}
	return out
}

func (a *App) handleProductSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}

	var form ProductForm
	msg, err := a.decodeAndValidate(c.Request().PostForm, &form)
	if err != nil {
		return err
	}
	if msg != "" {
		draft := form.product()
		return a.renderDashboardFormError(c, msg, &draft, nil)
	}

	p := form.product()
	action := "product_created"
	if p.ID != "" {
		// Edits keep the click counters and creation time; the form does
		// not carry them.
		existing, err := a.Store.GetProduct(p.ID)
		if err == nil {
			p.Clicks = existing.Clicks
			p.LastClicked = existing.LastClicked
			p.CreatedAt = existing.CreatedAt
			action = "product_updated"
		}
	}
	saved, err := a.Store.SaveProduct(p)
	if err != nil {
		return err
	}
	a.Cache.Invalidate()
	a.logActivity(c, action, saved.Name)
	return a.redirectDashboard(c, "Product saved")
}

func (a *App) handleProductDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	id := c.Param("id")
	p, err := a.Store.GetProduct(id)
	if err != nil && err != ErrNotFound {
		return err
	}
	if err := a.Store.DeleteProduct(id); err != nil {
		return err
	}
	a.Cache.Invalidate()
	a.logActivity(c, "product_deleted", p.Name)
	return a.redirectDashboard(c, "Product deleted")
}

func (a *App) handleArticleSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}

	var form ArticleForm
	msg, err := a.decodeAndValidate(c.Request().PostForm, &form)
	if err != nil {
		return err
	}
	if msg != "" {
		draft := form.article()
		return a.renderDashboardFormError(c, msg, nil, &draft)
	}

	art := form.article()
	action := "article_created"
	if art.ID != "" {
		existing, err := a.Store.GetArticle(art.ID)
		if err == nil {
			art.CreatedAt = existing.CreatedAt
			action = "article_updated"
		}
	}
	saved, err := a.Store.SaveArticle(art)
	if err != nil {
		return err
	}
	a.Cache.Invalidate()
	a.logActivity(c, action, saved.Title)
	return a.redirectDashboard(c, "Article saved")
}

func (a *App) handleArticleDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	id := c.Param("id")
	art, err := a.Store.GetArticle(id)
	if err != nil && err != ErrNotFound {
		return err
	}
	if err := a.Store.DeleteArticle(id); err != nil {
		return err
	}
	a.Cache.Invalidate()
	a.logActivity(c, "article_deleted", art.Title)
	return a.redirectDashboard(c, "Article deleted")
}

func (a *App) redirectDashboard(c echo.Context, msg string) error {
	return c.Redirect(http.StatusSeeOther, "/admin?msg="+url.QueryEscape(msg))
}

// renderDashboardFormError re-renders the dashboard after a rejected
// submission with the admin's input intact, instead of redirecting and
// dropping it.
func (a *App) renderDashboardFormError(c echo.Context, msg string, productDraft *views.Product, articleDraft *views.Article) error {
	page, err := a.buildAdminPage(c)
	if err != nil {
		return err
	}
	page.FormError = msg
	page.ProductDraft = productDraft
	page.ArticleDraft = articleDraft
	return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.AdminDashboard(page))
}

// logActivity appends to the audit trail. Failures are logged, never
// surfaced to the admin flow.
func (a *App) logActivity(c echo.Context, action, details string) {
	user := adminEmail(c)
	if user == "" {
		user = "admin"
	}
	if err := a.Store.LogActivity(action, details, user); err != nil {
		c.Logger().Errorf("affliora: log activity %s: %v", action, err)
	}
}
