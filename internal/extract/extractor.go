package extract

import (
	"context"

	"github.com/hyperifyio/docsum/internal/source"
)

// Extractor turns one source reference into plain text. Implementations never
// return an error: failures are logged and yield "" (or partial text).
type Extractor interface {
	Extract(ctx context.Context, src string) string
}

// Func adapts a plain function to the Extractor interface.
type Func func(ctx context.Context, src string) string

func (f Func) Extract(ctx context.Context, src string) string { return f(ctx, src) }

// Set dispatches a classified reference to the single extractor registered
// for its kind.
type Set struct {
	byKind map[source.Kind]Extractor
}

// Options configures the default extractor set.
type Options struct {
	Fetcher Fetcher
	OCR     PageRecognizer
	// PDFTextFallback reads the embedded text layer when OCR yields nothing.
	PDFTextFallback bool
}

// NewSet wires the five built-in extractors.
func NewSet(opts Options) *Set {
	s := &Set{byKind: make(map[source.Kind]Extractor, 5)}
	s.Register(source.KindURL, &URL{Fetcher: opts.Fetcher})
	s.Register(source.KindPDF, &PDFOCR{OCR: opts.OCR, TextFallback: opts.PDFTextFallback})
	s.Register(source.KindDOCX, DOCX{})
	s.Register(source.KindCSV, CSV{})
	s.Register(source.KindTXT, Text{})
	return s
}

// Register replaces the extractor for kind.
func (s *Set) Register(kind source.Kind, e Extractor) {
	if kind == source.KindUnsupported {
		return
	}
	s.byKind[kind] = e
}

// Extract runs the extractor for ref. ok is false when no extractor handles
// the reference kind.
func (s *Set) Extract(ctx context.Context, ref source.Ref) (text string, ok bool) {
	e, ok := s.byKind[ref.Kind]
	if !ok || e == nil {
		return "", false
	}
	return e.Extract(ctx, ref.Raw), true
}
