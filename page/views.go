package page

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"ahmet-ozay-website/locale"
)

var readTimeUnit = map[locale.Locale]string{locale.DE: "Min. Lesezeit", locale.EN: "min read", locale.TR: "dk okuma"}

var relatedHeading = map[locale.Locale]string{locale.DE: "Ähnliche Artikel", locale.EN: "Related articles", locale.TR: "İlgili makaleler"}

// Layout ist das HTML-Grundgerüst mit allen Meta-Tags und JSON-LD-Blöcken.
func Layout(l locale.Locale, md Metadata, ld []JSONLD, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html><html lang=\"" + attr(string(l)) + "\"><head><meta charset=\"utf-8\">")
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		writeHead(&buf, md)
		for _, doc := range ld {
			if doc == nil {
				continue
			}
			raw, err := json.Marshal(doc)
			if err != nil {
				return err
			}
			buf.WriteString(`<script type="application/ld+json">`)
			buf.Write(raw)
			buf.WriteString(`</script>`)
		}
		buf.WriteString("</head><body>")
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

func writeHead(buf *bytes.Buffer, m Metadata) {
	buf.WriteString("<title>" + html.EscapeString(m.Title) + "</title>")
	meta(buf, "name", "description", m.Description)
	meta(buf, "name", "keywords", strings.Join(m.Keywords, ", "))
	buf.WriteString(`<link rel="canonical" href="` + attr(m.Canonical) + `">`)
	for _, a := range m.Alternates {
		buf.WriteString(`<link rel="alternate" hreflang="` + attr(a.Hreflang) + `" href="` + attr(a.URL) + `">`)
	}

	og := m.OpenGraph
	meta(buf, "property", "og:type", og.Type)
	meta(buf, "property", "og:title", og.Title)
	meta(buf, "property", "og:description", og.Description)
	meta(buf, "property", "og:url", og.URL)
	meta(buf, "property", "og:site_name", og.SiteName)
	meta(buf, "property", "og:locale", og.Locale)
	for _, alt := range og.AlternateLocales {
		meta(buf, "property", "og:locale:alternate", alt)
	}
	meta(buf, "property", "og:image", og.Image.URL)
	meta(buf, "property", "og:image:width", strconv.Itoa(og.Image.Width))
	meta(buf, "property", "og:image:height", strconv.Itoa(og.Image.Height))
	meta(buf, "property", "og:image:alt", og.Image.Alt)
	if og.PublishedTime != nil {
		meta(buf, "property", "article:published_time", og.PublishedTime.UTC().Format(time.RFC3339))
	}
	meta(buf, "property", "article:author", og.Author)
	meta(buf, "property", "article:section", og.Section)
	for _, t := range og.Tags {
		meta(buf, "property", "article:tag", t)
	}

	tw := m.Twitter
	meta(buf, "name", "twitter:card", tw.Card)
	meta(buf, "name", "twitter:title", tw.Title)
	meta(buf, "name", "twitter:description", tw.Description)
	meta(buf, "name", "twitter:image", tw.Image)
	meta(buf, "name", "twitter:creator", tw.Creator)
}

// meta lässt leere Werte weg.
func meta(buf *bytes.Buffer, key, name, content string) {
	if content == "" {
		return
	}
	buf.WriteString(`<meta ` + key + `="` + attr(name) + `" content="` + attr(content) + `">`)
}

func attr(s string) string { return html.EscapeString(s) }

// ArticleView rendert eine Artikelseite komplett, inklusive Layout.
func ArticleView(p ArticlePage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeBreadcrumbs(&buf, p.Breadcrumbs)
		buf.WriteString(`<article><header>`)
		buf.WriteString(`<span class="category">` + html.EscapeString(p.CategoryLabel) + `</span>`)
		buf.WriteString(`<span class="read-time">` + strconv.Itoa(p.ReadTime) + " " + html.EscapeString(readTimeUnit[p.Locale]) + `</span>`)
		if !p.PublishedAt.IsZero() {
			buf.WriteString(`<time datetime="` + p.PublishedAt.UTC().Format(time.RFC3339) + `">` + p.PublishedAt.Format("02.01.2006") + `</time>`)
		}
		buf.WriteString(`<h1>` + html.EscapeString(p.Title) + `</h1>`)
		if p.Author != "" {
			buf.WriteString(`<p class="author">` + html.EscapeString(p.Author) + `</p>`)
		}
		if p.ImageURL != "" {
			buf.WriteString(`<img src="` + attr(p.ImageURL) + `" alt="` + attr(p.ImageAlt) + `" width="1200" height="630">`)
		}
		buf.WriteString(`</header><div class="prose">`)
		buf.WriteString(p.BodyHTML)
		buf.WriteString(`</div><footer><ul class="share">`)
		for _, s := range p.Share {
			buf.WriteString(`<li><a href="` + attr(s.URL) + `" target="_blank" rel="noopener noreferrer" aria-label="` + attr(s.Label) + `">` + html.EscapeString(s.Network) + `</a></li>`)
		}
		buf.WriteString(`</ul></footer></article>`)
		if len(p.Related) > 0 {
			buf.WriteString(`<aside><h2>` + html.EscapeString(relatedHeading[p.Locale]) + `</h2><ul>`)
			for _, r := range p.Related {
				buf.WriteString(`<li><a href="` + attr(r.URL) + `">` + html.EscapeString(r.Title) + `</a></li>`)
			}
			buf.WriteString(`</ul></aside>`)
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
	return Layout(p.Locale, p.Metadata, p.JSONLD, body)
}

// StaticView rendert Start- und Über-mich-Seite.
func StaticView(p StaticPage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<main><h1>` + html.EscapeString(p.Heading) + `</h1><p>` + html.EscapeString(p.Intro) + `</p>`)
		if len(p.FAQs) > 0 {
			buf.WriteString(`<section class="faq">`)
			for _, f := range p.FAQs {
				buf.WriteString(`<details><summary>` + html.EscapeString(f.Question) + `</summary><p>` + html.EscapeString(f.Answer) + `</p></details>`)
			}
			buf.WriteString(`</section>`)
		}
		buf.WriteString(`</main>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
	return Layout(p.Locale, p.Metadata, p.JSONLD, body)
}

func writeBreadcrumbs(buf *bytes.Buffer, crumbs []Crumb) {
	if len(crumbs) == 0 {
		return
	}
	buf.WriteString(`<nav aria-label="Breadcrumb"><ol>`)
	for i, c := range crumbs {
		if i == len(crumbs)-1 {
			buf.WriteString(`<li aria-current="page">` + html.EscapeString(c.Name) + `</li>`)
			continue
		}
		buf.WriteString(`<li><a href="` + attr(c.URL) + `">` + html.EscapeString(c.Name) + `</a></li>`)
	}
	buf.WriteString(`</ol></nav>`)
}
