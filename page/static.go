package page

import (
	"ahmet-ozay-website/locale"
	"ahmet-ozay-website/models"
)

// StaticPage ist eine Seite ohne CMS-Inhalt (Startseite, Über mich).
type StaticPage struct {
	Locale   locale.Locale `json:"locale"`
	Path     string        `json:"path"`
	Heading  string        `json:"heading"`
	Intro    string        `json:"intro"`
	FAQs     []FAQ         `json:"-"`
	Metadata Metadata      `json:"metadata"`
	JSONLD   []JSONLD      `json:"jsonLd"`
}

type staticText struct {
	Title       models.LocalizedText
	Description models.LocalizedText
}

var homeText = staticText{
	Title: models.LocalizedText{
		locale.DE: "Ahmet Özay - Journalist & Autor",
		locale.EN: "Ahmet Özay - Journalist & Author",
		locale.TR: "Ahmet Özay - Gazeteci & Yazar",
	},
	Description: models.LocalizedText{
		locale.DE: "Artikel über Politik, Gesellschaft, Medien und Geschichte.",
		locale.EN: "Articles on politics, society, media and history.",
		locale.TR: "Siyaset, toplum, medya ve tarih üzerine makaleler.",
	},
}

var aboutText = staticText{
	Title: models.LocalizedText{
		locale.DE: "Über mich",
		locale.EN: "About me",
		locale.TR: "Hakkımda",
	},
	Description: models.LocalizedText{
		locale.DE: "Journalist mit Schwerpunkt auf deutsch-türkischen Beziehungen und den Krimtataren.",
		locale.EN: "Journalist focusing on German-Turkish relations and the Crimean Tatars.",
		locale.TR: "Alman-Türk ilişkileri ve Kırım Tatarları üzerine çalışan gazeteci.",
	},
}

var aboutFAQs = map[locale.Locale][]FAQ{
	locale.DE: {
		{Question: "Worüber schreibt Ahmet Özay?", Answer: "Über Politik, Gesellschaft, Medien und Geschichte, mit Schwerpunkt auf deutsch-türkischen Beziehungen und den Krimtataren."},
		{Question: "In welchen Sprachen erscheinen die Artikel?", Answer: "Auf Deutsch, Englisch und Türkisch."},
	},
	locale.EN: {
		{Question: "What does Ahmet Özay write about?", Answer: "Politics, society, media and history, with a focus on German-Turkish relations and the Crimean Tatars."},
		{Question: "Which languages are the articles published in?", Answer: "German, English and Turkish."},
	},
	locale.TR: {
		{Question: "Ahmet Özay ne hakkında yazıyor?", Answer: "Siyaset, toplum, medya ve tarih; özellikle Alman-Türk ilişkileri ve Kırım Tatarları."},
		{Question: "Makaleler hangi dillerde yayımlanıyor?", Answer: "Almanca, İngilizce ve Türkçe."},
	},
}

// HomePage ist die Startseite mit Person-Schema.
func HomePage(site Site, l locale.Locale) StaticPage {
	p := staticPage(site, l, "", homeText, "website")
	p.JSONLD = []JSONLD{PersonJSONLD(site, l, p.Intro)}
	return p
}

// AboutPage enthält die FAQ der Sprache l, mit Fallback auf die Standardsprache.
func AboutPage(site Site, l locale.Locale) StaticPage {
	p := staticPage(site, l, "/about", aboutText, "profile")
	p.FAQs = locale.ResolveSlice(aboutFAQs, l)
	p.JSONLD = []JSONLD{
		BreadcrumbJSONLD([]Crumb{
			{Name: "Home", URL: site.BaseURL + "/" + string(l)},
			{Name: p.Heading, URL: p.Metadata.Canonical},
		}),
	}
	if faq := FAQJSONLD(p.FAQs); faq != nil {
		p.JSONLD = append(p.JSONLD, faq)
	}
	return p
}

func staticPage(site Site, l locale.Locale, path string, text staticText, ogType string) StaticPage {
	title := locale.Resolve(text.Title, l)
	description := locale.Resolve(text.Description, l)
	canonical := site.BaseURL + "/" + string(l) + path
	image := OGImage{URL: site.BaseURL + PortraitPath, Width: ogImageWidth, Height: ogImageHeight, Alt: site.Name}
	fullTitle := PageTitle(title, site.Name)
	if path == "" {
		// Der Startseitentitel enthält den Namen bereits.
		fullTitle = title
	}

	return StaticPage{
		Locale:  l,
		Path:    path,
		Heading: title,
		Intro:   description,
		Metadata: Metadata{
			Title:       fullTitle,
			Description: description,
			Canonical:   canonical,
			Alternates:  Alternates(site.BaseURL, path),
			OpenGraph: OpenGraph{
				Type:             ogType,
				Title:            title,
				Description:      description,
				URL:              canonical,
				SiteName:         site.Name,
				Locale:           l.OpenGraph(),
				AlternateLocales: alternateOGLocales(l),
				Image:            image,
			},
			Twitter: Twitter{
				Card:        "summary_large_image",
				Title:       title,
				Description: description,
				Image:       image.URL,
				Creator:     TwitterCreator,
			},
		},
	}
}
