package output

import (
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	bodyFontSize  = 11.0
	lineHeight    = 5.5
	bulletIndent  = 6.0
	headingHeight = 8.0
)

// renderPDF lays the response out on A4 pages. Markdown "#" headings are set
// in bold and "-"/"*" list items get a hanging bullet; every other line is a
// wrapped paragraph.
func renderPDF(response, outPath string) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("docsum response", true)
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()
	doc.SetFont("Helvetica", "", bodyFontSize)
	// Core fonts are cp1252.
	enc := doc.UnicodeTranslatorFromDescriptor("")

	left, _, right, _ := doc.GetMargins()
	width, _ := doc.GetPageSize()
	textWidth := width - left - right

	for _, line := range strings.Split(strings.ReplaceAll(response, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			doc.Ln(lineHeight)
		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			size := 15.0 - float64(level)
			if size < bodyFontSize+1 {
				size = bodyFontSize + 1
			}
			doc.SetFont("Helvetica", "B", size)
			doc.MultiCell(textWidth, headingHeight, enc(strings.TrimSpace(trimmed[level:])), "", "L", false)
			doc.SetFont("Helvetica", "", bodyFontSize)
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			doc.SetX(left + bulletIndent)
			doc.MultiCell(textWidth-bulletIndent, lineHeight, enc("• "+trimmed[2:]), "", "L", false)
		default:
			doc.MultiCell(textWidth, lineHeight, enc(trimmed), "", "L", false)
		}
	}
	return doc.OutputFileAndClose(outPath)
}
