// Package page setzt aufgelöste Artikeldaten, gerendertes HTML und SEO-Metadaten zu einer Seite zusammen.
package page

import (
	"math"
	"strings"
	"unicode"

	"ahmet-ozay-website/models"
)

// WordsPerMinute ist die Lesegeschwindigkeit für die geschätzte Lesezeit.
const WordsPerMinute = 200

// PlainText sammelt den Inline-Text aller Blöcke. Whitespace wird zu einzelnen Leerzeichen zusammengefasst.
// Bilder tragen keinen Text bei.
func PlainText(blocks []models.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		var sb strings.Builder
		switch b.Kind {
		case models.KindList:
			for _, item := range b.Items {
				writeSpanText(&sb, item)
				sb.WriteByte(' ')
			}
		default:
			writeSpanText(&sb, b.Spans)
		}
		if t := strings.TrimSpace(sb.String()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func writeSpanText(sb *strings.Builder, spans []models.Span) {
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
}

// WordCount zählt die Tokens des Klartexts, die mindestens einen Buchstaben enthalten.
// Reine Zahlen und Satzzeichen zählen nicht.
func WordCount(blocks []models.Block) int {
	n := 0
	for _, tok := range strings.Fields(PlainText(blocks)) {
		if strings.IndexFunc(tok, unicode.IsLetter) >= 0 {
			n++
		}
	}
	return n
}

// ReadTime bevorzugt den im CMS gepflegten Wert (1-60 Minuten), sonst ceil(words/200), mindestens 1.
func ReadTime(stored, words int) int {
	if stored >= 1 && stored <= 60 {
		return stored
	}
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
