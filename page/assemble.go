package page

import (
	"time"

	"ahmet-ozay-website/locale"
	"ahmet-ozay-website/models"
	"ahmet-ozay-website/render"
)

// ArticlePage ist die fertig aufgelöste Artikelseite für eine Sprache.
type ArticlePage struct {
	ID            string                  `json:"id"`
	Slug          string                  `json:"slug"`
	Locale        locale.Locale           `json:"locale"`
	Title         string                  `json:"title"`
	Excerpt       string                  `json:"excerpt"`
	Category      models.Category         `json:"category"`
	CategoryLabel string                  `json:"categoryLabel"`
	Author        string                  `json:"author"`
	PublishedAt   time.Time               `json:"publishedAt"`
	Tags          []string                `json:"tags,omitempty"`
	ImageURL      string                  `json:"imageUrl,omitempty"`
	ImageAlt      string                  `json:"imageAlt,omitempty"`
	OriginalURL   string                  `json:"originalUrl,omitempty"`
	BodyHTML      string                  `json:"bodyHtml"`
	WordCount     int                     `json:"wordCount"`
	ReadTime      int                     `json:"readTime"`
	Related       []models.ArticleSummary `json:"related"`
	Breadcrumbs   []Crumb                 `json:"-"`
	Metadata      Metadata                `json:"metadata"`
	JSONLD        []JSONLD                `json:"jsonLd"`
	Share         []ShareLink             `json:"share"`
}

// Builder hält, was für jede Artikelseite gleich ist.
type Builder struct {
	Site     Site
	Renderer *render.Renderer
}

// NewBuilder erstellt einen Builder.
func NewBuilder(site Site, renderer *render.Renderer) *Builder {
	return &Builder{Site: site, Renderer: renderer}
}

// BuildArticlePage löst alle Felder für l auf, rendert den Text und erzeugt Metadaten und JSON-LD.
// related darf leer sein.
func (b *Builder) BuildArticlePage(a *models.Article, l locale.Locale, related []models.Article) ArticlePage {
	blocks := locale.ResolveSlice(a.Content, l)
	body := PlainText(blocks)
	words := WordCount(blocks)

	summary := a.Summary(l, b.Site.BaseURL, b.Site.Images)
	p := ArticlePage{
		ID:            a.ID,
		Slug:          a.Slug,
		Locale:        l,
		Title:         summary.Title,
		Excerpt:       summary.Excerpt,
		Category:      a.Category,
		CategoryLabel: a.Category.Label(l),
		Author:        a.Author,
		PublishedAt:   a.PublishedAt,
		Tags:          a.Tags,
		ImageURL:      summary.ImageURL,
		ImageAlt:      summary.ImageAlt,
		OriginalURL:   a.OriginalURL,
		BodyHTML:      b.Renderer.RenderString(blocks, l),
		WordCount:     words,
		ReadTime:      ReadTime(a.ReadTime, words),
		Related:       make([]models.ArticleSummary, 0, len(related)),
		Metadata:      ArticleMetadata(b.Site, a, l),
		Share:         ShareLinks(summary.Title, summary.Excerpt, summary.URL),
	}
	for i := range related {
		p.Related = append(p.Related, related[i].Summary(l, b.Site.BaseURL, b.Site.Images))
	}

	p.Breadcrumbs = ArticleCrumbs(b.Site, a, l)
	p.JSONLD = []JSONLD{
		ArticleJSONLD(b.Site, a, l, body, words),
		BreadcrumbJSONLD(p.Breadcrumbs),
	}
	return p
}
