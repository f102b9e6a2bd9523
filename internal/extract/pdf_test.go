package extract

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/docsum/internal/ocr"
)

type fakeOCR struct {
	images     []string
	rasterErr  error
	failOn     string
	recognized []string
}

func (f *fakeOCR) Rasterize(context.Context, string) (*ocr.Pages, error) {
	if f.rasterErr != nil {
		return nil, f.rasterErr
	}
	return &ocr.Pages{Images: f.images}, nil
}

func (f *fakeOCR) Recognize(_ context.Context, image string) (string, error) {
	if image == f.failOn {
		return "", errors.New("recognition failed")
	}
	f.recognized = append(f.recognized, image)
	return "<" + image + ">", nil
}

func TestPDFOCR_ConcatenatesPagesInOrder(t *testing.T) {
	f := &fakeOCR{images: []string{"p1", "p2", "p3"}}
	got := (&PDFOCR{OCR: f}).Extract(context.Background(), "scan.pdf")
	if got != "<p1><p2><p3>" {
		t.Fatalf("got %q", got)
	}
}

func TestPDFOCR_FailureKeepsPartialText(t *testing.T) {
	f := &fakeOCR{images: []string{"p1", "p2", "p3"}, failOn: "p2"}
	got := (&PDFOCR{OCR: f}).Extract(context.Background(), "scan.pdf")
	if got != "<p1>" {
		t.Fatalf("expected partial text, got %q", got)
	}
	if len(f.recognized) != 1 {
		t.Fatalf("expected loop to stop after failure, recognized=%v", f.recognized)
	}
}

func TestPDFOCR_RasterizeFailureYieldsEmpty(t *testing.T) {
	f := &fakeOCR{rasterErr: errors.New("pdftoppm: not found")}
	if got := (&PDFOCR{OCR: f}).Extract(context.Background(), "scan.pdf"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestPDFOCR_NoEngineYieldsEmpty(t *testing.T) {
	if got := (&PDFOCR{}).Extract(context.Background(), "scan.pdf"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func writeTextPDF(t *testing.T, text string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "layer.pdf")
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(40, 10, text)
	if err := doc.OutputFileAndClose(p); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	return p
}

func TestPDFOCR_TextLayerFallback(t *testing.T) {
	p := writeTextPDF(t, "Hello PDF layer")
	f := &fakeOCR{rasterErr: errors.New("tesseract missing")}

	if got := (&PDFOCR{OCR: f}).Extract(context.Background(), p); got != "" {
		t.Fatalf("fallback disabled: expected empty, got %q", got)
	}
	got := (&PDFOCR{OCR: f, TextFallback: true}).Extract(context.Background(), p)
	if !strings.Contains(got, "Hello PDF layer") {
		t.Fatalf("expected text layer, got %q", got)
	}
}

func TestPDFOCR_FallbackNotUsedWhenOCRHasText(t *testing.T) {
	p := writeTextPDF(t, "layer text")
	f := &fakeOCR{images: []string{"p1"}}
	got := (&PDFOCR{OCR: f, TextFallback: true}).Extract(context.Background(), p)
	if got != "<p1>" {
		t.Fatalf("expected OCR text, got %q", got)
	}
}
