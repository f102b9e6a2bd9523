// Package ocr turns scanned PDF pages into text by rasterizing them with
// pdftoppm and recognizing each page image with tesseract.
package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Default settings for the external tools.
const (
	DefaultPdftoppm  = "pdftoppm"
	DefaultTesseract = "tesseract"
	DefaultLang      = "eng"
	DefaultDPI       = 200
)

type Config struct {
	Pdftoppm  string // binary name or absolute path
	Tesseract string // binary name or absolute path
	Lang      string
	DPI       int
	// MaxPages caps rasterized pages; 0 means no limit.
	MaxPages    int
	TessdataDir string
}

// Engine runs the rasterize and recognize steps.
type Engine struct {
	cfg    Config
	runner Runner
}

// New returns an Engine that shells out to the configured binaries.
func New(cfg Config) *Engine {
	return NewWithRunner(cfg, execRunner{})
}

// NewWithRunner is New with a custom command runner.
func NewWithRunner(cfg Config, r Runner) *Engine {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = DefaultPdftoppm
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = DefaultTesseract
	}
	if cfg.Lang == "" {
		cfg.Lang = DefaultLang
	}
	if cfg.DPI <= 0 {
		cfg.DPI = DefaultDPI
	}
	if r == nil {
		r = execRunner{}
	}
	return &Engine{cfg: cfg, runner: r}
}

// Pages is a set of rendered page images living in a temporary directory.
type Pages struct {
	Images []string
	dir    string
}

// Close removes the rendered images.
func (p *Pages) Close() error {
	if p == nil || p.dir == "" {
		return nil
	}
	return os.RemoveAll(p.dir)
}

// Rasterize renders every page of the PDF at path to a PNG image, returned in
// page order. Callers must Close the result.
func (e *Engine) Rasterize(ctx context.Context, path string) (*Pages, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	tmpDir, err := os.MkdirTemp("", "docsum-pp-*")
	if err != nil {
		return nil, err
	}
	pages := &Pages{dir: tmpDir}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 200 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", strconv.Itoa(e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		_ = pages.Close()
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, strings.TrimSpace(string(errb)))
	}

	// prefix-1.png, prefix-2.png, ... zero-padded to equal width by pdftoppm
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		_ = pages.Close()
		return nil, fmt.Errorf("pdftoppm produced no images")
	}
	pages.Images = matches
	return pages, nil
}

// Recognize runs tesseract on a single image and returns the recognized text.
func (e *Engine) Recognize(ctx context.Context, image string) (string, error) {
	args := []string{image, "stdout", "-l", e.cfg.Lang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(string(errb)))
	}
	return string(out), nil
}
