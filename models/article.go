package models

import (
	"time"

	"ahmet-ozay-website/locale"
)

// Category ist die Rubrik eines Artikels.
type Category string

const (
	CategoryPolitics Category = "politik"
	CategorySociety  Category = "gesellschaft"
	CategoryMedia    Category = "medien"
	CategoryHistory  Category = "geschichte"
)

// Categories in Anzeige-Reihenfolge.
var Categories = []Category{CategoryPolitics, CategorySociety, CategoryMedia, CategoryHistory}

var categoryLabels = map[Category]LocalizedText{
	CategoryPolitics: {locale.DE: "Politik", locale.EN: "Politics", locale.TR: "Siyaset"},
	CategorySociety:  {locale.DE: "Gesellschaft", locale.EN: "Society", locale.TR: "Toplum"},
	CategoryMedia:    {locale.DE: "Medien", locale.EN: "Media", locale.TR: "Medya"},
	CategoryHistory:  {locale.DE: "Geschichte", locale.EN: "History", locale.TR: "Tarih"},
}

// Valid meldet, ob c eine bekannte Rubrik ist.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label ist der lokalisierte Anzeigename.
func (c Category) Label(l locale.Locale) string {
	if labels, ok := categoryLabels[c]; ok {
		return locale.Resolve(labels, l)
	}
	return string(c)
}

// CoverImage ist das Titelbild eines Artikels.
type CoverImage struct {
	AssetRef string `json:"assetRef"`
	Alt      string `json:"alt,omitempty"`
}

// Article ist ein veröffentlichter Artikel, wie ihn das CMS liefert.
// Content ist nur bei Einzelabfragen befüllt.
type Article struct {
	ID          string          `json:"_id"`
	CreatedAt   time.Time       `json:"_createdAt"`
	Slug        string          `json:"slug"`
	Title       LocalizedText   `json:"title"`
	Excerpt     LocalizedText   `json:"excerpt"`
	Content     LocalizedBlocks `json:"content,omitempty"`
	Category    Category        `json:"category"`
	PublishedAt time.Time       `json:"publishedAt"`
	Author      string          `json:"author"`
	ReadTime    int             `json:"readTime"`
	Featured    bool            `json:"featured"`
	Tags        []string        `json:"tags,omitempty"`
	Image       *CoverImage     `json:"image,omitempty"`
	OriginalURL string          `json:"originalUrl,omitempty"`
}

// ArticleRef ist die minimale Projektion für die Slug-Auflösung.
type ArticleRef struct {
	ID    string        `json:"_id"`
	Slug  string        `json:"slug"`
	Title LocalizedText `json:"title"`
}

// ArticleSummary ist die für eine Sprache aufgelöste Listenansicht eines Artikels.
type ArticleSummary struct {
	ID          string        `json:"id"`
	Slug        string        `json:"slug"`
	Locale      locale.Locale `json:"locale"`
	URL         string        `json:"url"`
	Title       string        `json:"title"`
	Excerpt     string        `json:"excerpt"`
	Category    Category      `json:"category"`
	PublishedAt time.Time     `json:"publishedAt"`
	Author      string        `json:"author"`
	ReadTime    int           `json:"readTime,omitempty"`
	Featured    bool          `json:"featured"`
	Tags        []string      `json:"tags,omitempty"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	ImageAlt    string        `json:"imageAlt,omitempty"`
	OriginalURL string        `json:"originalUrl,omitempty"`
}

// ArticleFilter schränkt Listenabfragen ein. Leere Felder filtern nicht.
type ArticleFilter struct {
	Category     Category
	FeaturedOnly bool
	Search       string
	Limit        int
	Offset       int
}

// ImageURLFunc erzeugt eine CDN-URL für eine Asset-Referenz in der gewünschten Größe.
type ImageURLFunc func(assetRef string, width, height int) string

// ArticlePath liefert den lokalisierten Pfad eines Artikels.
func ArticlePath(l locale.Locale, slug string) string {
	return "/" + string(l) + "/artikel/" + slug
}

// ArticleURL liefert die kanonische URL eines Artikels.
func ArticleURL(baseURL string, l locale.Locale, slug string) string {
	return baseURL + ArticlePath(l, slug)
}

// Summary löst alle lokalisierten Felder für l auf.
func (a *Article) Summary(l locale.Locale, baseURL string, images ImageURLFunc) ArticleSummary {
	s := ArticleSummary{
		ID:          a.ID,
		Slug:        a.Slug,
		Locale:      l,
		URL:         ArticleURL(baseURL, l, a.Slug),
		Title:       locale.Resolve(a.Title, l),
		Excerpt:     locale.Resolve(a.Excerpt, l),
		Category:    a.Category,
		PublishedAt: a.PublishedAt,
		Author:      a.Author,
		ReadTime:    a.ReadTime,
		Featured:    a.Featured,
		Tags:        a.Tags,
		OriginalURL: a.OriginalURL,
	}
	if a.Image != nil && a.Image.AssetRef != "" && images != nil {
		s.ImageURL = images(a.Image.AssetRef, 1200, 630)
		s.ImageAlt = a.Image.Alt
	}
	return s
}

// TopicOverlap zählt gemeinsame Rubrik und gemeinsame Tags. 0 heißt: kein gemeinsames Thema.
func (a *Article) TopicOverlap(category Category, tags []string) int {
	score := 0
	if category != "" && a.Category == category {
		score++
	}
	for _, t := range a.Tags {
		for _, o := range tags {
			if t == o {
				score++
			}
		}
	}
	return score
}
