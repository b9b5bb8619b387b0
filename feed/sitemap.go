package feed

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"time"

	"ahmet-ozay-website/locale"
	"ahmet-ozay-website/models"
)

// Entry ist ein Eintrag der Sitemap.
type Entry struct {
	URL             string
	LastModified    time.Time
	ChangeFrequency string
	Priority        float64
}

type staticRoute struct {
	Path     string
	Freq     string
	Priority float64
}

// StaticRoutes sind die festen Seiten pro Sprache.
var StaticRoutes = []staticRoute{
	{"", "daily", 1.0},
	{"/artikel", "daily", 0.9},
	{"/about", "monthly", 0.8},
	{"/kontakt", "monthly", 0.7},
	{"/krimtataren", "weekly", 0.9},
	{"/impressum", "monthly", 0.5},
}

// BuildSitemap listet erst alle statischen Seiten, dann jeden Artikel in jeder Sprache.
func BuildSitemap(articles []models.Article, opts Options) []Entry {
	now := opts.now().UTC()
	entries := make([]Entry, 0, len(locale.Supported)*(len(StaticRoutes)+len(articles)))
	for _, l := range locale.Supported {
		for _, r := range StaticRoutes {
			entries = append(entries, Entry{
				URL:             opts.BaseURL + "/" + string(l) + r.Path,
				LastModified:    now,
				ChangeFrequency: r.Freq,
				Priority:        r.Priority,
			})
		}
	}
	for _, l := range locale.Supported {
		for i := range articles {
			entries = append(entries, Entry{
				URL:             models.ArticleURL(opts.BaseURL, l, articles[i].Slug),
				LastModified:    articles[i].PublishedAt.UTC(),
				ChangeFrequency: "weekly",
				Priority:        0.8,
			})
		}
	}
	return entries
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// WriteSitemap schreibt die Einträge als sitemaps.org-XML.
func WriteSitemap(w io.Writer, entries []Entry) error {
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9", URLs: make([]sitemapURL, 0, len(entries))}
	for _, e := range entries {
		u := sitemapURL{Loc: e.URL, ChangeFreq: e.ChangeFrequency, Priority: strconv.FormatFloat(e.Priority, 'f', 1, 64)}
		if !e.LastModified.IsZero() {
			u.LastMod = e.LastModified.Format(time.RFC3339)
		}
		set.URLs = append(set.URLs, u)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(set)
}

// Robots liefert robots.txt mit Verweis auf die Sitemap. Die API wird nicht gecrawlt.
func Robots(baseURL string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n\n")
	b.WriteString("Sitemap: " + baseURL + "/sitemap.xml\n")
	return b.String()
}
