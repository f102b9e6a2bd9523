package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/docsum/internal/aggregate"
	"github.com/hyperifyio/docsum/internal/extract"
	"github.com/hyperifyio/docsum/internal/fetch"
	"github.com/hyperifyio/docsum/internal/llm"
	"github.com/hyperifyio/docsum/internal/ocr"
	"github.com/hyperifyio/docsum/internal/output"
	"github.com/hyperifyio/docsum/internal/source"
)

// NoReadableTextMessage is printed when every input produced blank text.
const NoReadableTextMessage = "No readable text found in provided inputs. Try another file or check formatting."

// ErrNoReadableText is returned when the combined document is blank. No
// completion request is made in that case and the CLI exits successfully.
var ErrNoReadableText = errors.New("no readable text")

// Deps lets callers replace collaborators. Zero values select the real
// implementations built from Config.
type Deps struct {
	LLM        llm.Client
	Extractors *extract.Set
	Stdout     io.Writer
}

type App struct {
	cfg        Config
	stdout     io.Writer
	extractors *extract.Set
	completer  *llm.Completer
	sink       output.Sink
}

func New(cfg Config, deps Deps) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	stdout := deps.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	extractors := deps.Extractors
	if extractors == nil {
		extractors = extract.NewSet(extract.Options{
			Fetcher: &fetch.Client{
				HTTPClient:        newHTTPClient(0),
				UserAgent:         cfg.FetchUserAgent,
				PerRequestTimeout: cfg.FetchTimeout,
			},
			OCR:             ocr.New(ocrConfig(cfg)),
			PDFTextFallback: cfg.PDFTextFallback,
		})
	}

	client := deps.LLM
	if client == nil {
		client = llm.NewOpenAIClient(llm.Endpoint{
			BaseURL:    cfg.LLMBaseURL,
			APIKey:     cfg.LLMAPIKey,
			HTTPClient: newHTTPClient(cfg.LLMTimeout),
		})
	}

	return &App{
		cfg:        cfg,
		stdout:     stdout,
		extractors: extractors,
		completer: &llm.Completer{
			Client:        client,
			Model:         cfg.LLMModel,
			SystemPrompt:  cfg.SystemPrompt,
			Temperature:   cfg.Temperature,
			MaxTokens:     cfg.MaxTokens,
			MaxInputChars: cfg.MaxInputChars,
		},
		sink: output.Sink{Path: cfg.OutputPath, Format: cfg.OutputFormat, Stdout: stdout},
	}, nil
}

func ocrConfig(cfg Config) ocr.Config {
	return ocr.Config{
		Pdftoppm:    cfg.PdftoppmCmd,
		Tesseract:   cfg.TesseractCmd,
		Lang:        cfg.OCRLang,
		DPI:         cfg.OCRDPI,
		MaxPages:    cfg.OCRMaxPages,
		TessdataDir: cfg.TessdataDir,
	}
}

// Run extracts every source in order, sends the combined text with the query
// to the model and delivers the response.
func (a *App) Run(ctx context.Context) error {
	doc := a.combine(ctx)
	if aggregate.Blank(doc) {
		fmt.Fprintln(a.stdout, NoReadableTextMessage)
		return ErrNoReadableText
	}

	fmt.Fprint(a.stdout, "\nSending data to local LLM...\n\n")
	response, err := a.completer.Complete(ctx, a.cfg.Query, doc)
	if err != nil {
		return err
	}
	return a.sink.Write(response)
}

// combine builds the aggregate document. Unsupported sources are reported and
// contribute nothing; supported ones always contribute their text plus a
// newline, even when extraction failed.
func (a *App) combine(ctx context.Context) string {
	var b aggregate.Builder
	for _, ref := range source.Parse(a.cfg.Sources) {
		if !ref.Supported() {
			a.reportUnsupported(ref)
			continue
		}
		text, ok := a.extractors.Extract(ctx, ref)
		if !ok {
			a.reportUnsupported(ref)
			continue
		}
		log.Debug().Str("source", ref.Raw).Str("kind", ref.Kind.String()).Int("chars", len([]rune(text))).Msg("extracted")
		b.Add(text)
	}
	log.Info().Int("sources", b.Sources()).Msg("inputs combined")
	return b.String()
}

func (a *App) reportUnsupported(ref source.Ref) {
	log.Warn().Str("source", ref.Raw).Msg("unsupported input skipped")
	fmt.Fprintf(a.stdout, "Unsupported file type: %s\n", ref.Raw)
}
