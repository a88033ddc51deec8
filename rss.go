package affliora

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

func (a *App) handleFeed(c echo.Context) error {
	articles, err := a.Cache.ListArticles()
	if err != nil {
		return err
	}
	base := a.Config.URL
	items := make([]rssItem, 0, len(articles))
	for _, art := range FilterArticles(articles, "", "") {
		pubDate := ""
		if t, err := time.Parse(time.RFC3339, art.CreatedAt); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		link := BuildURL(base, "articles", art.Slug)
		items = append(items, rssItem{
			Title:       art.Title,
			Link:        link,
			Description: art.Excerpt,
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
