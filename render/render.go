// Package render wandelt Content-Blöcke in HTML um, als templ.Component.
package render

import (
	"bytes"
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"ahmet-ozay-website/locale"
	"ahmet-ozay-website/models"
)

const (
	imageWidth  = 1200
	imageHeight = 800
)

// Renderer hält die Abhängigkeiten für die Bild-URLs.
type Renderer struct {
	Images models.ImageURLFunc
	Logger *zap.Logger
}

// New erstellt einen Renderer.
func New(images models.ImageURLFunc, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{Images: images, Logger: logger}
}

// Render liefert eine Komponente, die blocks für l als HTML schreibt.
func (r *Renderer) Render(blocks []models.Block, l locale.Locale) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		r.WriteBlocks(&buf, blocks, l)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderString rendert direkt in einen String.
func (r *Renderer) RenderString(blocks []models.Block, l locale.Locale) string {
	var buf bytes.Buffer
	r.WriteBlocks(&buf, blocks, l)
	return buf.String()
}

// WriteBlocks schreibt das HTML aller Blöcke nach buf.
func (r *Renderer) WriteBlocks(buf *bytes.Buffer, blocks []models.Block, l locale.Locale) {
	skipped := 0
	for _, b := range blocks {
		switch b.Kind {
		case models.KindParagraph:
			buf.WriteString("<p>")
			writeSpans(buf, b.Spans, l)
			buf.WriteString("</p>")
		case models.KindHeading:
			tag := "h" + strconv.Itoa(clampLevel(b.Level))
			buf.WriteString("<" + tag + ">")
			writeSpans(buf, b.Spans, l)
			buf.WriteString("</" + tag + ">")
		case models.KindBlockquote:
			buf.WriteString("<blockquote>")
			writeSpans(buf, b.Spans, l)
			buf.WriteString("</blockquote>")
		case models.KindList:
			tag := "ul"
			if b.Ordered {
				tag = "ol"
			}
			buf.WriteString("<" + tag + ">")
			for _, item := range b.Items {
				buf.WriteString("<li>")
				writeSpans(buf, item, l)
				buf.WriteString("</li>")
			}
			buf.WriteString("</" + tag + ">")
		case models.KindImage:
			if !r.writeImage(buf, b.Image) {
				skipped++
			}
		case models.KindUnknown:
			skipped++
			r.Logger.Debug("Skipping unknown content block", zap.String("type", b.Type))
		default:
			skipped++
			r.Logger.Warn("Skipping unsupported content block", zap.String("kind", string(b.Kind)))
		}
	}
	if skipped > 0 {
		r.Logger.Debug("Content blocks skipped", zap.Int("count", skipped))
	}
}

func clampLevel(level int) int {
	if level < 2 {
		return 2
	}
	if level > 4 {
		return 4
	}
	return level
}

func (r *Renderer) writeImage(buf *bytes.Buffer, img *models.ImageRef) bool {
	if img == nil || img.AssetRef == "" || r.Images == nil {
		return false
	}
	src := r.Images(img.AssetRef, imageWidth, imageHeight)
	if src == "" {
		return false
	}
	buf.WriteString(`<figure><img src="`)
	buf.WriteString(html.EscapeString(src))
	buf.WriteString(`" alt="`)
	buf.WriteString(html.EscapeString(img.Alt))
	buf.WriteString(`" width="` + strconv.Itoa(imageWidth) + `" height="` + strconv.Itoa(imageHeight) + `" loading="lazy">`)
	if img.Caption != "" {
		buf.WriteString("<figcaption>")
		buf.WriteString(html.EscapeString(img.Caption))
		buf.WriteString("</figcaption>")
	}
	buf.WriteString("</figure>")
	return true
}

var markTags = map[string]string{
	models.MarkStrong:    "strong",
	models.MarkEm:        "em",
	models.MarkUnderline: "u",
	models.MarkCode:      "code",
	models.MarkStrike:    "s",
}

func writeSpans(buf *bytes.Buffer, spans []models.Span, l locale.Locale) {
	for _, s := range spans {
		var opening, closing strings.Builder
		for _, m := range s.Marks {
			if tag, ok := markTags[m]; ok {
				opening.WriteString("<" + tag + ">")
				closing.WriteString("</" + tag + ">")
			}
		}
		text := html.EscapeString(s.Text)
		if s.Href != "" {
			text = linkHTML(s.Href, l, text)
		}
		buf.WriteString(opening.String())
		buf.WriteString(text)
		buf.WriteString(reverseTags(closing.String()))
	}
}

// reverseTags dreht die Reihenfolge der schließenden Tags, damit sie korrekt verschachtelt sind.
func reverseTags(closing string) string {
	if closing == "" {
		return ""
	}
	parts := strings.SplitAfter(closing, ">")
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
	}
	return b.String()
}

func linkHTML(href string, l locale.Locale, inner string) string {
	if IsInternal(href) {
		return `<a href="` + html.EscapeString(RewriteHref(href, l)) + `">` + inner + `</a>`
	}
	return `<a href="` + html.EscapeString(SafeURL(href)) + `" target="_blank" rel="noopener noreferrer">` + inner + `</a>`
}
