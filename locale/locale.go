// Package locale kennt die unterstützten Sprachen der Site und die Fallback-Regel auf die Standardsprache.
package locale

import "strings"

// Locale ist ein Sprachkürzel wie "de".
type Locale string

const (
	DE Locale = "de"
	EN Locale = "en"
	TR Locale = "tr"

	Default = DE
)

// Supported ist die feste Reihenfolge aller Sprachen.
var Supported = []Locale{DE, EN, TR}

var ogLocales = map[Locale]string{
	DE: "de_DE",
	EN: "en_US",
	TR: "tr_TR",
}

var names = map[Locale]string{
	DE: "Deutsch",
	EN: "English",
	TR: "Türkçe",
}

// IsSupported meldet, ob l eine bekannte Sprache ist.
func IsSupported(l Locale) bool {
	for _, s := range Supported {
		if s == l {
			return true
		}
	}
	return false
}

// Parse liest ein Sprachkürzel. Unbekannte Werte liefern Default und ok=false.
func Parse(s string) (Locale, bool) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	if IsSupported(l) {
		return l, true
	}
	return Default, false
}

// OpenGraph liefert das og:locale Format, z.B. "de_DE".
func (l Locale) OpenGraph() string {
	if v, ok := ogLocales[l]; ok {
		return v
	}
	return ogLocales[Default]
}

// Name ist der Anzeigename der Sprache.
func (l Locale) Name() string {
	return names[l]
}

func (l Locale) String() string { return string(l) }

// Resolve liefert values[requested], falls vorhanden und nicht leer, sonst values[Default].
// Es gibt genau eine Fallback-Stufe.
func Resolve[V ~string](values map[Locale]V, requested Locale) V {
	if v := values[requested]; v != "" {
		return v
	}
	return values[Default]
}

// ResolveSlice wendet dieselbe Regel auf Sequenzen an (z.B. Content-Blöcke).
func ResolveSlice[E any](values map[Locale][]E, requested Locale) []E {
	if v := values[requested]; len(v) > 0 {
		return v
	}
	return values[Default]
}

// FirstAvailable liefert den ersten nicht leeren Wert in der angegebenen Reihenfolge.
func FirstAvailable[V ~string](values map[Locale]V, order ...Locale) V {
	if len(order) == 0 {
		order = Supported
	}
	for _, l := range order {
		if v := values[l]; v != "" {
			return v
		}
	}
	var zero V
	return zero
}
