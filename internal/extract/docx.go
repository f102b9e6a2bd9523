package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// DOCX returns the body paragraphs of a Word document, one per line, in
// document order. Paragraphs nested in tables, headers or text boxes are not
// body paragraphs and are skipped.
type DOCX struct{}

func (DOCX) Extract(_ context.Context, path string) string {
	paras, err := readDOCXParagraphs(path)
	if err != nil {
		log.Error().Err(err).Str("source", path).Msg("Error reading DOCX")
		return ""
	}
	return strings.Join(paras, "\n")
}

const (
	docxMainPart = "word/document.xml"
	wordNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// wordName is the local name of a WordprocessingML element. Elements from
// other vocabularies (math, drawing) keep their namespace so they never match.
func wordName(n xml.Name) string {
	if n.Space == wordNS {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func readDOCXParagraphs(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != docxMainPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return bodyParagraphs(rc)
	}
	return nil, fmt.Errorf("missing %s", docxMainPart)
}

// bodyParagraphs streams WordprocessingML and collects the text of every
// <w:p> that is a direct child of <w:body>.
func bodyParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		stack     []string
		paras     []string
		cur       strings.Builder
		paraDepth int // stack depth of the open body paragraph, 0 if none
		inText    bool
	)
	parent := func() string {
		if len(stack) < 2 {
			return ""
		}
		return stack[len(stack)-2]
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch v := tok.(type) {
		case xml.StartElement:
			name := wordName(v.Name)
			stack = append(stack, name)
			switch name {
			case "p":
				if paraDepth == 0 && parent() == "body" {
					paraDepth = len(stack)
					cur.Reset()
				}
			case "t":
				inText = paraDepth > 0
			case "tab":
				if paraDepth > 0 && parent() == "r" {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if paraDepth > 0 {
					cur.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inText {
				cur.Write(v)
			}
		case xml.EndElement:
			switch wordName(v.Name) {
			case "t":
				inText = false
			case "p":
				if paraDepth > 0 && len(stack) == paraDepth {
					paras = append(paras, cur.String())
					paraDepth = 0
				}
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return paras, nil
}
