package affliora

import (
	"encoding/xml"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SitemapURLSet is the <urlset> document root.
type SitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapURL is a single <url> entry.
type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// BuildSitemap assembles the sitemap for the static pages plus every visible
// product and published article. Records without a slug are skipped, those
// URLs would not resolve.
func BuildSitemap(base string, now time.Time, products []Product, articles []Article) SitemapURLSet {
	lastmod := now.Format("2006-01-02")
	urls := []SitemapURL{
		{Loc: BuildURL(base), LastMod: lastmod, ChangeFreq: "daily", Priority: "1.0"},
		{Loc: BuildURL(base, "products"), LastMod: lastmod, ChangeFreq: "daily", Priority: "0.9"},
	}
	for _, p := range products {
		if !p.Visible || p.Slug == "" {
			continue
		}
		urls = append(urls, SitemapURL{
			Loc:        BuildURL(base, "products", p.Slug),
			LastMod:    lastmod,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}
	urls = append(urls, SitemapURL{
		Loc: BuildURL(base, "articles"), LastMod: lastmod, ChangeFreq: "weekly", Priority: "0.7",
	})
	for _, art := range articles {
		if !art.Published || art.Slug == "" {
			continue
		}
		urls = append(urls, SitemapURL{
			Loc:        BuildURL(base, "articles", art.Slug),
			LastMod:    lastmod,
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}
	return SitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

// WriteSitemap serializes a sitemap with the XML header prepended.
func WriteSitemap(w io.Writer, set SitemapURLSet) error {
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(set)
}

func (a *App) handleSitemap(c echo.Context) error {
	products, err := a.Cache.ListProducts()
	if err != nil {
		return err
	}
	articles, err := a.Cache.ListArticles()
	if err != nil {
		return err
	}
	set := BuildSitemap(a.Config.URL, time.Now(), products, articles)
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteSitemap(c.Response(), set)
}
