package render

import (
	"strings"

	"ahmet-ozay-website/locale"
)

// IsInternal: kein absoluter http(s)-Link und entweder relativ zur Wurzel oder ein Artikelpfad.
func IsInternal(href string) bool {
	if strings.HasPrefix(href, "http") {
		return false
	}
	return strings.HasPrefix(href, "/") || strings.Contains(href, "/artikel/")
}

// RewriteHref setzt vor interne Links das Sprachpräfix, falls noch keines vorhanden ist.
// Mehrfaches Anwenden ändert das Ergebnis nicht.
func RewriteHref(href string, l locale.Locale) string {
	if !IsInternal(href) {
		return href
	}
	if hasLocalePrefix(href) {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return "/" + string(l) + href
}

func hasLocalePrefix(href string) bool {
	for _, l := range locale.Supported {
		p := "/" + string(l)
		if href == p || strings.HasPrefix(href, p+"/") || strings.HasPrefix(href, p+"?") || strings.HasPrefix(href, p+"#") {
			return true
		}
	}
	return false
}

var safeSchemes = map[string]bool{"http": true, "https": true, "mailto": true, "tel": true}

// SafeURL neutralisiert Links mit unbekanntem Schema (javascript:, data:, vbscript:) zu "#".
// Relative Pfade und Anker bleiben unverändert.
func SafeURL(raw string) string {
	// Browser ignorieren Steuerzeichen und Leerraum im Schema ("java\tscript:").
	cleaned := strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, raw)
	scheme, _, found := strings.Cut(cleaned, ":")
	if !found || !isScheme(scheme) {
		return raw
	}
	if safeSchemes[strings.ToLower(scheme)] {
		return raw
	}
	return "#"
}

// isScheme: ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ). Alles mit "/", "?" oder "#" vor dem
// Doppelpunkt ist ein Pfad.
func isScheme(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
