package extract

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Document is the visible text of a page, title included.
type Document struct {
	Text string
}

// FromHTML strips markup and returns the visible text of an HTML page.
// Script, style and similar non-rendered elements are skipped; block elements
// are separated by line breaks.
func FromHTML(input []byte) Document {
	return fromHTMLReader(bytes.NewReader(input))
}

// FromHTMLWithContentType is FromHTML for a body whose Content-Type header may
// declare a non-UTF-8 charset.
func FromHTMLWithContentType(input []byte, contentType string) Document {
	r, err := charset.NewReader(bytes.NewReader(input), contentType)
	if err != nil {
		return FromHTML(input)
	}
	return fromHTMLReader(r)
}

func fromHTMLReader(r io.Reader) Document {
	node, err := html.Parse(r)
	if err != nil || node == nil {
		return Document{}
	}
	var b strings.Builder
	collectText(&b, node, false)
	return Document{Text: normalizeWhitespace(b.String())}
}

func collectText(b *strings.Builder, n *html.Node, inPre bool) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "template", "iframe", "svg":
			return
		case "pre":
			inPre = true
		case "br", "hr":
			b.WriteString("\n")
		case "p", "div", "section", "article", "header", "footer", "nav", "main", "aside",
			"h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "table", "tr", "title", "blockquote":
			b.WriteString("\n")
		case "td", "th":
			b.WriteString(" ")
		}
	}

	if n.Type == html.TextNode {
		data := n.Data
		if !inPre {
			data = strings.ReplaceAll(data, "\t", " ")
			data = strings.ReplaceAll(data, "\r", " ")
		}
		b.WriteString(data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c, inPre)
	}

	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
			b.WriteString("\n\n")
		case "li", "tr", "div", "title", "pre":
			b.WriteString("\n")
		}
	}
}

func normalizeWhitespace(s string) string {
	// Collapse multiple spaces and blank lines
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// Keep at most one consecutive blank
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, collapseSpaces(trimmed))
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\u00a0' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
