package models

import (
	"encoding/json"

	"ahmet-ozay-website/locale"
)

// BlockKind ist die geschlossene Menge der Content-Block-Varianten.
type BlockKind string

const (
	KindParagraph  BlockKind = "paragraph"
	KindHeading    BlockKind = "heading"
	KindBlockquote BlockKind = "blockquote"
	KindImage      BlockKind = "image"
	KindList       BlockKind = "list"
	// KindUnknown hält Blöcke, deren Typ wir nicht kennen. Sie werden nie gerendert.
	KindUnknown BlockKind = "unknown"
)

// Inline-Dekorationen
const (
	MarkStrong    = "strong"
	MarkEm        = "em"
	MarkUnderline = "underline"
	MarkCode      = "code"
	MarkStrike    = "strike-through"
)

var decorators = map[string]bool{
	MarkStrong:    true,
	MarkEm:        true,
	MarkUnderline: true,
	MarkCode:      true,
	MarkStrike:    true,
}

// Span ist ein Stück Inline-Text mit Dekorationen und optionalem Link.
type Span struct {
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
	Href  string   `json:"href,omitempty"`
}

// ImageRef verweist auf ein Bild-Asset im CMS.
type ImageRef struct {
	AssetRef string `json:"assetRef,omitempty"`
	Alt      string `json:"alt,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// Block ist eine Struktureinheit des Artikeltexts.
//
// Welche Felder gesetzt sind, hängt von Kind ab: Spans für paragraph, heading und blockquote,
// Items und Ordered für list, Image für image. Level gilt nur für heading (2-4).
type Block struct {
	Kind    BlockKind `json:"kind"`
	Level   int       `json:"level,omitempty"`
	Spans   []Span    `json:"spans,omitempty"`
	Ordered bool      `json:"ordered,omitempty"`
	Items   [][]Span  `json:"items,omitempty"`
	Image   *ImageRef `json:"image,omitempty"`
	// Type ist der ursprüngliche CMS-Typ bei KindUnknown.
	Type string `json:"type,omitempty"`
}

// Paragraph ist ein Konstruktor für einfache Absätze.
func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Spans: []Span{{Text: text}}}
}

// Heading ist ein Konstruktor für Überschriften.
func Heading(level int, text string) Block {
	return Block{Kind: KindHeading, Level: level, Spans: []Span{{Text: text}}}
}

// Portable-Text Rohformat, wie es das CMS liefert.
type ptSpan struct {
	Type  string   `json:"_type"`
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

type ptMarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href"`
}

type ptBlock struct {
	Type     string      `json:"_type"`
	Style    string      `json:"style"`
	ListItem string      `json:"listItem"`
	Children []ptSpan    `json:"children"`
	MarkDefs []ptMarkDef `json:"markDefs"`
	Asset    *struct {
		Ref string `json:"_ref"`
	} `json:"asset"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

// DecodePortableText übersetzt Portable-Text-JSON in Blöcke.
// Aufeinanderfolgende Listeneinträge gleicher Art werden zu einem list-Block zusammengefasst.
func DecodePortableText(data []byte) ([]Block, error) {
	var raw []ptBlock
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return fromPortableText(raw), nil
}

func fromPortableText(raw []ptBlock) []Block {
	out := make([]Block, 0, len(raw))
	for _, b := range raw {
		switch b.Type {
		case "block":
			spans := convertSpans(b.Children, b.MarkDefs)
			if b.ListItem != "" {
				ordered := b.ListItem == "number"
				if n := len(out); n > 0 && out[n-1].Kind == KindList && out[n-1].Ordered == ordered {
					out[n-1].Items = append(out[n-1].Items, spans)
					continue
				}
				out = append(out, Block{Kind: KindList, Ordered: ordered, Items: [][]Span{spans}})
				continue
			}
			out = append(out, styledBlock(b.Style, spans))
		case "image":
			img := &ImageRef{Alt: b.Alt, Caption: b.Caption}
			if b.Asset != nil {
				img.AssetRef = b.Asset.Ref
			}
			out = append(out, Block{Kind: KindImage, Image: img})
		default:
			out = append(out, Block{Kind: KindUnknown, Type: b.Type})
		}
	}
	return out
}

func styledBlock(style string, spans []Span) Block {
	switch style {
	case "h1", "h2":
		return Block{Kind: KindHeading, Level: 2, Spans: spans}
	case "h3":
		return Block{Kind: KindHeading, Level: 3, Spans: spans}
	case "h4", "h5", "h6":
		return Block{Kind: KindHeading, Level: 4, Spans: spans}
	case "blockquote":
		return Block{Kind: KindBlockquote, Spans: spans}
	default:
		return Block{Kind: KindParagraph, Spans: spans}
	}
}

func convertSpans(children []ptSpan, defs []ptMarkDef) []Span {
	links := make(map[string]string, len(defs))
	for _, d := range defs {
		if d.Type == "link" && d.Href != "" {
			links[d.Key] = d.Href
		}
	}
	spans := make([]Span, 0, len(children))
	for _, c := range children {
		if c.Type != "" && c.Type != "span" {
			continue
		}
		s := Span{Text: c.Text}
		for _, m := range c.Marks {
			if decorators[m] {
				s.Marks = append(s.Marks, m)
			} else if href, ok := links[m]; ok {
				s.Href = href
			}
		}
		spans = append(spans, s)
	}
	return spans
}

// LocalizedText bildet Sprache auf Text ab.
type LocalizedText map[locale.Locale]string

// UnmarshalJSON übernimmt nur unterstützte Sprachen und ignoriert CMS-Metafelder wie _type.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*t = nil
		return nil
	}
	out := make(LocalizedText, len(raw))
	for k, v := range raw {
		l := locale.Locale(k)
		if !locale.IsSupported(l) {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			continue
		}
		out[l] = s
	}
	*t = out
	return nil
}

// LocalizedBlocks bildet Sprache auf eine Blocksequenz ab.
// Beim Dekodieren wird Portable Text erwartet, beim Kodieren das eigene Block-Format.
type LocalizedBlocks map[locale.Locale][]Block

func (lb *LocalizedBlocks) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*lb = nil
		return nil
	}
	out := make(LocalizedBlocks, len(raw))
	for k, v := range raw {
		l := locale.Locale(k)
		if !locale.IsSupported(l) {
			continue
		}
		blocks, err := DecodePortableText(v)
		if err != nil {
			// Eine kaputte Sprachversion darf die anderen nicht mitreißen.
			continue
		}
		out[l] = blocks
	}
	*lb = out
	return nil
}
