// Package feed erzeugt RSS-Feed, Sitemap und robots.txt aus der Artikelliste.
package feed

import (
	"encoding/xml"
	"io"
	"time"

	"ahmet-ozay-website/locale"
	"ahmet-ozay-website/models"
)

const (
	// RSSItemLimit ist die Anzahl der neuesten Artikel im Feed.
	RSSItemLimit = 20

	rssTitle       = "Ahmet Özay - Artikel"
	rssDescription = "Artikel und Analysen von Ahmet Özay zu deutsch-türkischen Beziehungen, der Geschichte der Krimtataren und gesellschaftspolitischen Themen."
	defaultAuthor  = "Ahmet Özay"
)

// Der Feed ist deutsch, fehlende Texte kommen aus en, dann tr.
var rssLocaleOrder = []locale.Locale{locale.DE, locale.EN, locale.TR}

type rssXML struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	XMLNSAtom string     `xml:"xmlns:atom,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssEnclosure struct {
	URL  string `xml:"url,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	GUID        rssGUID       `xml:"guid"`
	Description string        `xml:"description"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
	PubDate     string        `xml:"pubDate"`
	Author      string        `xml:"author"`
	Categories  []string      `xml:"category"`
}

// Options sind die Site-Angaben für Feed und Sitemap.
type Options struct {
	BaseURL string
	Images  models.ImageURLFunc
	Now     func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// WriteRSS schreibt den RSS-2.0-Feed der neuesten Artikel nach w. articles müssen nach Datum absteigend sortiert sein.
func WriteRSS(w io.Writer, articles []models.Article, opts Options) error {
	if len(articles) > RSSItemLimit {
		articles = articles[:RSSItemLimit]
	}
	items := make([]rssItem, 0, len(articles))
	for i := range articles {
		items = append(items, rssItemFor(&articles[i], opts))
	}

	feed := rssXML{
		Version:   "2.0",
		XMLNSAtom: "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:         rssTitle,
			Link:          opts.BaseURL,
			Description:   rssDescription,
			Language:      "de-DE",
			LastBuildDate: opts.now().UTC().Format(time.RFC1123Z),
			AtomLink:      atomLink{Href: opts.BaseURL + "/feed.xml", Rel: "self", Type: "application/rss+xml"},
			Items:         items,
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(feed)
}

func rssItemFor(a *models.Article, opts Options) rssItem {
	link := models.ArticleURL(opts.BaseURL, locale.DE, a.Slug)
	author := a.Author
	if author == "" {
		author = defaultAuthor
	}
	item := rssItem{
		Title:       locale.FirstAvailable(a.Title, rssLocaleOrder...),
		Link:        link,
		GUID:        rssGUID{IsPermaLink: true, Value: link},
		Description: locale.FirstAvailable(a.Excerpt, rssLocaleOrder...),
		PubDate:     a.PublishedAt.UTC().Format(time.RFC1123Z),
		Author:      author,
	}
	if a.Category != "" {
		item.Categories = append(item.Categories, string(a.Category))
	}
	item.Categories = append(item.Categories, a.Tags...)

	if a.Image != nil && a.Image.AssetRef != "" && opts.Images != nil {
		if u := opts.Images(a.Image.AssetRef, 1200, 630); u != "" {
			item.Enclosure = &rssEnclosure{URL: u, Type: "image/jpeg"}
		}
	}
	return item
}
