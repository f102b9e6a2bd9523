// Package aggregate joins per-source texts into the combined document.
package aggregate

import "strings"

// Builder accumulates extracted texts in input order. Every added text is
// followed by a newline, so a source that produced nothing still contributes
// a bare "\n".
type Builder struct {
	sb      strings.Builder
	sources int
}

// Add appends one source's text.
func (b *Builder) Add(text string) {
	b.sb.WriteString(text)
	b.sb.WriteByte('\n')
	b.sources++
}

// Sources is the number of texts added so far.
func (b *Builder) Sources() int { return b.sources }

// String returns the combined document.
func (b *Builder) String() string { return b.sb.String() }

// Combine is the one-shot form of Builder.
func Combine(texts []string) string {
	var b Builder
	for _, t := range texts {
		b.Add(t)
	}
	return b.String()
}

// Blank reports whether the combined document has no readable text.
func Blank(doc string) bool {
	return strings.TrimSpace(doc) == ""
}
