package extract

import (
	"context"
	"errors"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/docsum/internal/ocr"
)

// PageRecognizer rasterizes a PDF and recognizes text on each page image.
// *ocr.Engine implements it.
type PageRecognizer interface {
	Rasterize(ctx context.Context, path string) (*ocr.Pages, error)
	Recognize(ctx context.Context, image string) (string, error)
}

// PDFOCR extracts text from a PDF by OCR of every page. The first failure
// stops the page loop and the text recognized so far is returned.
type PDFOCR struct {
	OCR PageRecognizer
	// TextFallback reads the embedded text layer when OCR produced nothing.
	TextFallback bool
}

func (p *PDFOCR) Extract(ctx context.Context, path string) string {
	text, err := p.ocrPages(ctx, path)
	if err != nil {
		log.Error().Err(err).Str("source", path).Msg("Error during OCR")
	}
	if p.TextFallback && strings.TrimSpace(text) == "" {
		layer, lerr := textLayer(path)
		if lerr != nil {
			log.Warn().Err(lerr).Str("source", path).Msg("pdf text layer unavailable")
			return text
		}
		log.Debug().Str("source", path).Int("chars", len(layer)).Msg("using pdf text layer")
		return layer
	}
	return text
}

func (p *PDFOCR) ocrPages(ctx context.Context, path string) (string, error) {
	if p == nil || p.OCR == nil {
		return "", errors.New("ocr engine not configured")
	}
	pages, err := p.OCR.Rasterize(ctx, path)
	if err != nil {
		return "", err
	}
	defer pages.Close()

	var sb strings.Builder
	for _, img := range pages.Images {
		txt, err := p.OCR.Recognize(ctx, img)
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(txt)
	}
	log.Debug().Str("source", path).Int("pages", len(pages.Images)).Msg("ocr complete")
	return sb.String(), nil
}

// textLayer reads the text embedded in the PDF, one page per line.
func textLayer(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}
