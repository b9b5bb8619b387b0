package page

import (
	"time"

	"ahmet-ozay-website/locale"
	"ahmet-ozay-website/models"
)

const schemaContext = "https://schema.org"

// JSONLD ist ein schema.org-Objekt, so wie es in <script type="application/ld+json"> landet.
type JSONLD = map[string]any

// FAQ ist ein Frage-Antwort-Paar für FAQPage.
type FAQ struct {
	Question string
	Answer   string
}

// Crumb ist ein Element der Breadcrumb-Navigation.
type Crumb struct {
	Name string
	URL  string
}

var breadcrumbLabels = models.LocalizedText{locale.DE: "Artikel", locale.EN: "Articles", locale.TR: "Makaleler"}

var jobTitles = models.LocalizedText{locale.DE: "Journalist & Autor", locale.EN: "Journalist & Author", locale.TR: "Gazeteci & Yazar"}

// PersonSameAs sind die Profile des Autors.
var PersonSameAs = []string{
	"https://x.com/aoezay",
	"https://www.linkedin.com/in/ahmet-özay-34b97a200/",
}

// PersonJSONLD beschreibt den Autor.
func PersonJSONLD(site Site, l locale.Locale, description string) JSONLD {
	p := JSONLD{
		"@context":   schemaContext,
		"@type":      "Person",
		"name":       site.Name,
		"jobTitle":   locale.Resolve(jobTitles, l),
		"url":        site.BaseURL + "/" + string(l),
		"image":      site.BaseURL + PortraitPath,
		"sameAs":     PersonSameAs,
		"knowsAbout": []string{"Journalismus", "Deutsch-türkische Beziehungen", "Krimtataren", "Minderheitenrechte"},
		"inLanguage": string(l),
	}
	if description != "" {
		p["description"] = description
	}
	return p
}

// ArticleJSONLD liefert ein NewsArticle mit vollem Klartext und Wortanzahl.
func ArticleJSONLD(site Site, a *models.Article, l locale.Locale, body string, words int) JSONLD {
	canonical := models.ArticleURL(site.BaseURL, l, a.Slug)
	title := locale.Resolve(a.Title, l)
	author := a.Author
	if author == "" {
		author = site.Name
	}

	doc := JSONLD{
		"@context":         schemaContext,
		"@type":            "NewsArticle",
		"headline":         title,
		"description":      locale.Resolve(a.Excerpt, l),
		"url":              canonical,
		"mainEntityOfPage": JSONLD{"@type": "WebPage", "@id": canonical},
		"inLanguage":       string(l),
		"wordCount":        words,
		"articleSection":   a.Category.Label(l),
		"author": JSONLD{
			"@type":  "Person",
			"name":   author,
			"url":    site.BaseURL + "/" + string(l) + "/about",
			"sameAs": PersonSameAs,
		},
		"publisher": JSONLD{
			"@type": "Person",
			"name":  site.Name,
			"url":   site.BaseURL,
		},
		"image": coverImage(site, a, title).URL,
	}
	if body != "" {
		doc["articleBody"] = body
	}
	if !a.PublishedAt.IsZero() {
		doc["datePublished"] = a.PublishedAt.UTC().Format(time.RFC3339)
		doc["dateModified"] = a.PublishedAt.UTC().Format(time.RFC3339)
	}
	if len(a.Tags) > 0 {
		doc["keywords"] = a.Tags
	}
	if a.OriginalURL != "" {
		doc["isBasedOn"] = a.OriginalURL
	}
	return doc
}

// ArticleCrumbs ist der Pfad Home → Artikel → Titel.
func ArticleCrumbs(site Site, a *models.Article, l locale.Locale) []Crumb {
	home := site.BaseURL + "/" + string(l)
	return []Crumb{
		{Name: "Home", URL: home},
		{Name: locale.Resolve(breadcrumbLabels, l), URL: home + "/artikel"},
		{Name: locale.Resolve(a.Title, l), URL: models.ArticleURL(site.BaseURL, l, a.Slug)},
	}
}

// BreadcrumbJSONLD nummeriert die Crumbs ab 1.
func BreadcrumbJSONLD(crumbs []Crumb) JSONLD {
	items := make([]JSONLD, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, JSONLD{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     c.URL,
		})
	}
	return JSONLD{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

// FAQJSONLD liefert nil, wenn es keine Fragen gibt.
func FAQJSONLD(faqs []FAQ) JSONLD {
	if len(faqs) == 0 {
		return nil
	}
	entities := make([]JSONLD, 0, len(faqs))
	for _, f := range faqs {
		entities = append(entities, JSONLD{
			"@type": "Question",
			"name":  f.Question,
			"acceptedAnswer": JSONLD{
				"@type": "Answer",
				"text":  f.Answer,
			},
		})
	}
	return JSONLD{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
}
