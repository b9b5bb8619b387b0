package page

import (
	"net/url"
	"strings"
)

// ShareLink ist ein vorbereiteter Teilen-Link für ein Netzwerk.
type ShareLink struct {
	Network string `json:"network"`
	Label   string `json:"label"`
	URL     string `json:"url"`
}

// ShareLinks baut die Teilen-Links in fester Reihenfolge. Ist excerpt gesetzt, wird er an den Text gehängt.
func ShareLinks(title, excerpt, pageURL string) []ShareLink {
	text := title
	if excerpt != "" {
		text = title + " - " + excerpt
	}
	u := url.QueryEscape(pageURL)
	return []ShareLink{
		{"twitter", "Auf Twitter teilen", "https://twitter.com/intent/tweet?text=" + url.QueryEscape(text) + "&url=" + u},
		{"linkedin", "Auf LinkedIn teilen", "https://www.linkedin.com/sharing/share-offsite/?url=" + u},
		{"whatsapp", "Auf WhatsApp teilen", "https://wa.me/?text=" + url.QueryEscape(title+" "+pageURL)},
		{"telegram", "Auf Telegram teilen", "https://t.me/share/url?url=" + u + "&text=" + url.QueryEscape(title)},
		{"email", "Per E-Mail teilen", "mailto:?subject=" + mailEscape(title) + "&body=" + mailEscape(text+"\n\n"+pageURL)},
		{"facebook", "Auf Facebook teilen", "https://www.facebook.com/sharer/sharer.php?u=" + u},
		{"reddit", "Auf Reddit teilen", "https://reddit.com/submit?url=" + u + "&title=" + url.QueryEscape(title)},
	}
}

// mailEscape kodiert Leerzeichen als %20, da Mailprogramme "+" wörtlich nehmen.
func mailEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
