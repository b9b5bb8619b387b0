package page

import (
	"time"

	"ahmet-ozay-website/locale"
	"ahmet-ozay-website/models"
)

const (
	// TwitterCreator ist der Account des Autors.
	TwitterCreator = "@aoezay"
	// PortraitPath ist das Ersatzbild für Seiten ohne Titelbild.
	PortraitPath = "/images/ahmet-portrait.png"

	ogImageWidth  = 1200
	ogImageHeight = 630
)

// Site beschreibt die Website, unabhängig vom einzelnen Artikel.
type Site struct {
	BaseURL string
	Name    string
	Images  models.ImageURLFunc
}

// Alternate ist ein hreflang-Verweis.
type Alternate struct {
	Hreflang string `json:"hreflang"`
	URL      string `json:"url"`
}

// OGImage ist ein Vorschaubild für soziale Netzwerke.
type OGImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Alt    string `json:"alt,omitempty"`
}

// OpenGraph fasst die og:* Felder zusammen.
type OpenGraph struct {
	Type             string     `json:"type"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	URL              string     `json:"url"`
	SiteName         string     `json:"siteName"`
	Locale           string     `json:"locale"`
	AlternateLocales []string   `json:"alternateLocales,omitempty"`
	Image            OGImage    `json:"image"`
	PublishedTime    *time.Time `json:"publishedTime,omitempty"`
	Author           string     `json:"author,omitempty"`
	Section          string     `json:"section,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
}

// Twitter fasst die twitter:* Felder zusammen.
type Twitter struct {
	Card        string `json:"card"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Creator     string `json:"creator"`
}

// Metadata ist alles, was im <head> einer Seite landet (ohne JSON-LD).
type Metadata struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Canonical   string      `json:"canonical"`
	Alternates  []Alternate `json:"alternates"`
	Keywords    []string    `json:"keywords,omitempty"`
	OpenGraph   OpenGraph   `json:"openGraph"`
	Twitter     Twitter     `json:"twitter"`
}

// PageTitle hängt den Site-Namen an.
func PageTitle(title, siteName string) string {
	if title == "" {
		return siteName
	}
	return title + " | " + siteName
}

// Alternates liefert für jede Sprache die URL von path sowie x-default (Standardsprache).
// path ist ohne Sprachpräfix, z.B. "/artikel/krim" oder "".
func Alternates(baseURL, path string) []Alternate {
	out := make([]Alternate, 0, len(locale.Supported)+1)
	for _, l := range locale.Supported {
		out = append(out, Alternate{Hreflang: string(l), URL: baseURL + "/" + string(l) + path})
	}
	return append(out, Alternate{Hreflang: "x-default", URL: baseURL + "/" + string(locale.Default) + path})
}

// ArticleMetadata baut die Metadaten einer Artikelseite. Lokalisierte Felder folgen der Fallback-Regel.
func ArticleMetadata(site Site, a *models.Article, l locale.Locale) Metadata {
	title := locale.Resolve(a.Title, l)
	description := locale.Resolve(a.Excerpt, l)
	canonical := models.ArticleURL(site.BaseURL, l, a.Slug)
	image := coverImage(site, a, title)

	published := a.PublishedAt
	og := OpenGraph{
		Type:             "article",
		Title:            title,
		Description:      description,
		URL:              canonical,
		SiteName:         site.Name,
		Locale:           l.OpenGraph(),
		AlternateLocales: alternateOGLocales(l),
		Image:            image,
		Author:           a.Author,
		Section:          a.Category.Label(l),
		Tags:             a.Tags,
	}
	if !published.IsZero() {
		og.PublishedTime = &published
	}

	return Metadata{
		Title:       PageTitle(title, site.Name),
		Description: description,
		Canonical:   canonical,
		Alternates:  Alternates(site.BaseURL, "/artikel/"+a.Slug),
		Keywords:    a.Tags,
		OpenGraph:   og,
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       title,
			Description: description,
			Image:       image.URL,
			Creator:     TwitterCreator,
		},
	}
}

func coverImage(site Site, a *models.Article, fallbackAlt string) OGImage {
	img := OGImage{URL: site.BaseURL + PortraitPath, Width: ogImageWidth, Height: ogImageHeight, Alt: site.Name}
	if a.Image == nil || a.Image.AssetRef == "" || site.Images == nil {
		return img
	}
	if u := site.Images(a.Image.AssetRef, ogImageWidth, ogImageHeight); u != "" {
		img.URL = u
		img.Alt = a.Image.Alt
		if img.Alt == "" {
			img.Alt = fallbackAlt
		}
	}
	return img
}

func alternateOGLocales(current locale.Locale) []string {
	var out []string
	for _, l := range locale.Supported {
		if l != current {
			out = append(out, l.OpenGraph())
		}
	}
	return out
}
