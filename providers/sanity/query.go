package sanity

import (
	"fmt"
	"regexp"
	"strings"
)

// Query baut eine parametrisierte GROQ-Abfrage. Werte werden nie in den Abfragetext
// interpoliert, sondern als $-Parameter übergeben.
type Query struct {
	filters    []string
	params     map[string]any
	order      string
	slice      string
	projection []string
}

// Documents beginnt eine Abfrage über alle Dokumente eines Typs.
func Documents(docType string) *Query {
	q := &Query{params: map[string]any{}}
	return q.Filter("_type == $type").Param("type", docType)
}

// Filter fügt eine UND-verknüpfte Bedingung hinzu.
func (q *Query) Filter(expr string) *Query {
	q.filters = append(q.filters, expr)
	return q
}

// Param bindet einen Parameter, der im Filter als $name referenziert wird.
func (q *Query) Param(name string, value any) *Query {
	q.params[name] = value
	return q
}

// NotDraft schließt Entwürfe aus.
func (q *Query) NotDraft() *Query {
	return q.Filter(`!(_id in path("drafts.**"))`)
}

// Published schließt Entwürfe und Dokumente ohne Veröffentlichungsdatum aus.
func (q *Query) Published() *Query {
	return q.NotDraft().Filter("defined(publishedAt)")
}

// SlugEquals filtert auf slug.current.
func (q *Query) SlugEquals(slug string) *Query {
	return q.Filter("slug.current == $slug").Param("slug", slug)
}

// ExcludeSlug schließt ein Dokument über seinen Slug aus.
func (q *Query) ExcludeSlug(slug string) *Query {
	return q.Filter("slug.current != $excludeSlug").Param("excludeSlug", slug)
}

// InCategory filtert auf die Rubrik.
func (q *Query) InCategory(category string) *Query {
	return q.Filter("category == $category").Param("category", category)
}

// HasAnyTag verlangt mindestens einen der Tags.
func (q *Query) HasAnyTag(tags []string) *Query {
	return q.Filter("count((tags[])[@ in $tags]) > 0").Param("tags", tags)
}

// InCategoryOrTags verlangt dieselbe Rubrik oder mindestens einen gemeinsamen Tag.
func (q *Query) InCategoryOrTags(category string, tags []string) *Query {
	var parts []string
	if category != "" {
		parts = append(parts, "category == $category")
		q.Param("category", category)
	}
	if len(tags) > 0 {
		parts = append(parts, "count((tags[])[@ in $tags]) > 0")
		q.Param("tags", tags)
	}
	if len(parts) == 0 {
		return q.Filter("false")
	}
	return q.Filter(anyOf(parts))
}

// anyOf verknüpft Bedingungen mit ODER.
func anyOf(parts []string) string {
	return "(" + strings.Join(parts, " || ") + ")"
}

var matchSpecial = regexp.MustCompile(`[.*+?^${}()|\[\]\\]`)

// Matches sucht term in allen angegebenen Feldern (GROQ match, Wildcard-Muster).
func (q *Query) Matches(term string, fields ...string) *Query {
	if len(fields) == 0 {
		return q
	}
	escaped := matchSpecial.ReplaceAllString(strings.TrimSpace(term), `\$0`)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + " match $search"
	}
	return q.Filter(anyOf(parts)).Param("search", "*"+escaped+"*")
}

// OrderBy setzt die Sortierung, z.B. "publishedAt desc".
func (q *Query) OrderBy(order string) *Query {
	q.order = order
	return q
}

// Range begrenzt auf limit Treffer ab offset. limit <= 0 bedeutet unbegrenzt.
func (q *Query) Range(offset, limit int) *Query {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		if offset > 0 {
			q.slice = fmt.Sprintf("[%d..-1]", offset)
		}
		return q
	}
	q.slice = fmt.Sprintf("[%d...%d]", offset, offset+limit)
	return q
}

// First liefert nur das erste Dokument (oder null).
func (q *Query) First() *Query {
	q.slice = "[0]"
	return q
}

// Project wählt die zurückgegebenen Felder.
func (q *Query) Project(fields ...string) *Query {
	q.projection = append(q.projection, fields...)
	return q
}

// Params liefert die gebundenen Parameter.
func (q *Query) Params() map[string]any {
	return q.params
}

// String rendert den GROQ-Ausdruck.
func (q *Query) String() string {
	var b strings.Builder
	b.WriteString("*[")
	b.WriteString(strings.Join(q.filters, " && "))
	b.WriteString("]")
	if q.order != "" {
		b.WriteString(" | order(")
		b.WriteString(q.order)
		b.WriteString(")")
	}
	if q.slice != "" {
		if q.order != "" {
			b.WriteString(" ")
		}
		b.WriteString(q.slice)
	}
	if len(q.projection) > 0 {
		b.WriteString(" {")
		b.WriteString(strings.Join(q.projection, ", "))
		b.WriteString("}")
	}
	return b.String()
}
