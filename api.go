package affliora

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// handleAPIProducts serves the visible catalog as JSON. Read-only and
// unauthenticated; the sitemap batch tool consumes it.
func (a *App) handleAPIProducts(c echo.Context) error {
	products, err := a.Cache.ListProducts()
	if err != nil {
		return err
	}
	out := FilterProducts(products, "", "")
	if out == nil {
		out = []Product{}
	}
	return c.JSON(http.StatusOK, out)
}

// handleAPIArticles serves published articles as JSON.
func (a *App) handleAPIArticles(c echo.Context) error {
	articles, err := a.Cache.ListArticles()
	if err != nil {
		return err
	}
	out := FilterArticles(articles, "", "")
	if out == nil {
		out = []Article{}
	}
	return c.JSON(http.StatusOK, out)
}
