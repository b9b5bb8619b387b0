package page

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ahmet-ozay-website/locale"
	"ahmet-ozay-website/models"
	"ahmet-ozay-website/render"
)

func testSite() Site {
	return Site{
		BaseURL: "https://www.ahmetoezay.de",
		Name:    "Ahmet Özay",
		Images: func(ref string, w, h int) string {
			return "https://cdn.test/" + ref
		},
	}
}

func testArticle() *models.Article {
	return &models.Article{
		ID:          "a1",
		Slug:        "krim",
		Title:       models.LocalizedText{locale.DE: "Die Krim", locale.EN: "Crimea"},
		Excerpt:     models.LocalizedText{locale.DE: "Eine Geschichte"},
		Category:    models.CategoryHistory,
		Author:      "Ahmet Özay",
		PublishedAt: time.Date(2024, 5, 18, 10, 0, 0, 0, time.UTC),
		Tags:        []string{"krim", "ukraine"},
		Image:       &models.CoverImage{AssetRef: "image-abc-1200x800-jpg"},
		Content: models.LocalizedBlocks{
			locale.DE: {models.Paragraph("Hallo Welt"), models.Heading(2, "Titel")},
		},
	}
}

func TestWordCount(t *testing.T) {
	blocks := []models.Block{models.Paragraph("Hallo Welt"), models.Heading(2, "Titel")}
	assert.Equal(t, 3, WordCount(blocks))
	assert.Equal(t, "Hallo Welt Titel", PlainText(blocks))
}

func TestWordCountIgnoresNumbersAndPunctuation(t *testing.T) {
	blocks := []models.Block{
		models.Paragraph("Am 18. Mai 1944   wurden –  Tausende   deportiert."),
		{Kind: models.KindList, Items: [][]models.Span{{{Text: "Größe"}}, {{Text: "Kırım"}}}},
		{Kind: models.KindImage, Image: &models.ImageRef{AssetRef: "x", Caption: "nicht gezählt"}},
		{Kind: models.KindParagraph, Spans: []models.Span{{Text: "zusam"}, {Text: "men", Marks: []string{models.MarkStrong}}}},
	}
	assert.Equal(t, "Am 18. Mai 1944 wurden – Tausende deportiert. Größe Kırım zusammen", PlainText(blocks))
	assert.Equal(t, 8, WordCount(blocks))
	assert.Equal(t, 0, WordCount(nil))
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, 7, ReadTime(7, 10))
	assert.Equal(t, 1, ReadTime(0, 0))
	assert.Equal(t, 1, ReadTime(0, 200))
	assert.Equal(t, 2, ReadTime(0, 201))
	assert.Equal(t, 3, ReadTime(61, 450))
}

func TestArticleMetadata(t *testing.T) {
	m := ArticleMetadata(testSite(), testArticle(), locale.TR)

	assert.Equal(t, "Die Krim | Ahmet Özay", m.Title)
	assert.Equal(t, "Eine Geschichte", m.Description)
	assert.Equal(t, "https://www.ahmetoezay.de/tr/artikel/krim", m.Canonical)
	assert.Equal(t, []Alternate{
		{"de", "https://www.ahmetoezay.de/de/artikel/krim"},
		{"en", "https://www.ahmetoezay.de/en/artikel/krim"},
		{"tr", "https://www.ahmetoezay.de/tr/artikel/krim"},
		{"x-default", "https://www.ahmetoezay.de/de/artikel/krim"},
	}, m.Alternates)
	assert.Equal(t, "article", m.OpenGraph.Type)
	assert.Equal(t, "tr_TR", m.OpenGraph.Locale)
	assert.Equal(t, []string{"de_DE", "en_US"}, m.OpenGraph.AlternateLocales)
	assert.Equal(t, "https://cdn.test/image-abc-1200x800-jpg", m.OpenGraph.Image.URL)
	assert.Equal(t, "Die Krim", m.OpenGraph.Image.Alt)
	assert.Equal(t, "Tarih", m.OpenGraph.Section)
	assert.Equal(t, "summary_large_image", m.Twitter.Card)
	assert.Equal(t, TwitterCreator, m.Twitter.Creator)
}

func TestArticleMetadataWithoutImageUsesPortrait(t *testing.T) {
	a := testArticle()
	a.Image = nil
	m := ArticleMetadata(testSite(), a, locale.EN)
	assert.Equal(t, "Crimea | Ahmet Özay", m.Title)
	assert.Equal(t, "https://www.ahmetoezay.de/images/ahmet-portrait.png", m.OpenGraph.Image.URL)
	assert.Equal(t, m.OpenGraph.Image.URL, m.Twitter.Image)
}

func TestBreadcrumbJSONLD(t *testing.T) {
	crumbs := ArticleCrumbs(testSite(), testArticle(), locale.EN)
	ld := BreadcrumbJSONLD(crumbs)

	items := ld["itemListElement"].([]JSONLD)
	require.Len(t, items, 3)
	assert.Equal(t, 1, items[0]["position"])
	assert.Equal(t, "Articles", items[1]["name"])
	assert.Equal(t, "https://www.ahmetoezay.de/en/artikel", items[1]["item"])
	assert.Equal(t, "Crimea", items[2]["name"])
	assert.Equal(t, 3, items[2]["position"])
}

func TestFAQJSONLD(t *testing.T) {
	assert.Nil(t, FAQJSONLD(nil))

	ld := FAQJSONLD([]FAQ{{Question: "Warum?", Answer: "Darum."}})
	assert.Equal(t, "FAQPage", ld["@type"])
	q := ld["mainEntity"].([]JSONLD)[0]
	assert.Equal(t, "Warum?", q["name"])
	assert.Equal(t, "Darum.", q["acceptedAnswer"].(JSONLD)["text"])
}

func TestBuildArticlePage(t *testing.T) {
	site := testSite()
	b := NewBuilder(site, render.New(site.Images, nil))
	related := []models.Article{{Slug: "other", Title: models.LocalizedText{locale.DE: "Anderer"}}}

	p := b.BuildArticlePage(testArticle(), locale.EN, related)

	assert.Equal(t, "Crimea", p.Title)
	// Auszug gibt es nur auf Deutsch.
	assert.Equal(t, "Eine Geschichte", p.Excerpt)
	// Inhalt fällt auf Deutsch zurück.
	assert.Equal(t, "<p>Hallo Welt</p><h2>Titel</h2>", p.BodyHTML)
	assert.Equal(t, 3, p.WordCount)
	assert.Equal(t, 1, p.ReadTime)
	require.Len(t, p.Related, 1)
	assert.Equal(t, "https://www.ahmetoezay.de/en/artikel/other", p.Related[0].URL)
	assert.Equal(t, "Anderer", p.Related[0].Title)
	require.Len(t, p.JSONLD, 2)
	assert.Equal(t, "NewsArticle", p.JSONLD[0]["@type"])
	assert.Equal(t, 3, p.JSONLD[0]["wordCount"])
	assert.Equal(t, "Hallo Welt Titel", p.JSONLD[0]["articleBody"])
	assert.Equal(t, "2024-05-18T10:00:00Z", p.JSONLD[0]["datePublished"])
	assert.Equal(t, "BreadcrumbList", p.JSONLD[1]["@type"])
	require.Len(t, p.Share, 7)
	assert.Equal(t, "twitter", p.Share[0].Network)
}

func TestShareLinks(t *testing.T) {
	links := ShareLinks("A & B", "kurz", "https://site.test/de/artikel/x")
	byNetwork := map[string]string{}
	for _, l := range links {
		byNetwork[l.Network] = l.URL
	}
	assert.Equal(t, "https://twitter.com/intent/tweet?text=A+%26+B+-+kurz&url=https%3A%2F%2Fsite.test%2Fde%2Fartikel%2Fx", byNetwork["twitter"])
	assert.Equal(t, "https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fsite.test%2Fde%2Fartikel%2Fx", byNetwork["facebook"])
	assert.True(t, strings.HasPrefix(byNetwork["email"], "mailto:?subject=A%20%26%20B&body="))
	assert.NotContains(t, byNetwork["email"], "+")
}

func TestAboutPage(t *testing.T) {
	p := AboutPage(testSite(), locale.EN)
	assert.Equal(t, "About me | Ahmet Özay", p.Metadata.Title)
	assert.Equal(t, "profile", p.Metadata.OpenGraph.Type)
	assert.Equal(t, "https://www.ahmetoezay.de/en/about", p.Metadata.Canonical)
	require.Len(t, p.JSONLD, 2)
	assert.Equal(t, "FAQPage", p.JSONLD[1]["@type"])
	assert.NotEmpty(t, p.FAQs)

	home := HomePage(testSite(), locale.DE)
	assert.Equal(t, "Ahmet Özay - Journalist & Autor", home.Metadata.Title)
	assert.Equal(t, "Person", home.JSONLD[0]["@type"])
}

func TestArticleView(t *testing.T) {
	site := testSite()
	a := testArticle()
	a.Title[locale.DE] = "</script><b>x</b>"
	p := NewBuilder(site, render.New(site.Images, nil)).BuildArticlePage(a, locale.DE, nil)

	var buf bytes.Buffer
	require.NoError(t, ArticleView(p).Render(context.Background(), &buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<!DOCTYPE html><html lang="de">`))
	assert.Contains(t, out, `<link rel="canonical" href="https://www.ahmetoezay.de/de/artikel/krim">`)
	assert.Contains(t, out, `<link rel="alternate" hreflang="x-default" href="https://www.ahmetoezay.de/de/artikel/krim">`)
	assert.Contains(t, out, `<meta property="og:locale" content="de_DE">`)
	assert.Contains(t, out, `<meta name="twitter:creator" content="@aoezay">`)
	assert.Contains(t, out, `<h1>&lt;/script&gt;&lt;b&gt;x&lt;/b&gt;</h1>`)
	assert.Contains(t, out, `<p>Hallo Welt</p>`)
	// JSON-LD darf das Script-Tag nicht vorzeitig schließen.
	assert.Equal(t, 2, strings.Count(out, "</script>"))

	start := strings.Index(out, `<script type="application/ld+json">`) + len(`<script type="application/ld+json">`)
	end := strings.Index(out[start:], "</script>")
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out[start:start+end]), &doc))
	assert.Equal(t, "NewsArticle", doc["@type"])
}
