package app

import (
	"time"

	"github.com/hyperifyio/docsum/internal/budget"
	"github.com/hyperifyio/docsum/internal/llm"
	"github.com/hyperifyio/docsum/internal/ocr"
	"github.com/hyperifyio/docsum/internal/output"
)

// DefaultQuery is the prompt used when none is given.
const DefaultQuery = "Summarize this"

// Config holds runtime configuration for the application.
type Config struct {
	// Inputs
	Sources    []string
	Query      string
	OutputPath string

	// LLM
	LLMBaseURL   string
	LLMAPIKey    string
	LLMModel     string
	SystemPrompt string
	Temperature  float32
	MaxTokens    int
	// LLMTimeout bounds the completion call; zero means no timeout.
	LLMTimeout time.Duration

	// Limits
	MaxInputChars int

	// OCR
	PdftoppmCmd     string
	TesseractCmd    string
	OCRLang         string
	OCRDPI          int
	// OCRMaxPages caps the pages sent to tesseract; zero means all pages.
	OCRMaxPages     int
	TessdataDir     string
	PDFTextFallback bool

	// URL fetching
	FetchUserAgent string
	FetchTimeout   time.Duration

	// OutputFormat is "text" (verbatim, the default) or "pdf".
	OutputFormat string

	Verbose bool
}

// DefaultConfig returns the built-in settings: a local LM Studio style
// endpoint and the fixed sampling parameters.
func DefaultConfig() Config {
	return Config{
		Query:         DefaultQuery,
		LLMBaseURL:    llm.DefaultBaseURL,
		LLMAPIKey:     llm.DefaultAPIKey,
		LLMModel:      llm.DefaultModel,
		SystemPrompt:  llm.DefaultSystemPrompt,
		Temperature:   llm.DefaultTemperature,
		MaxTokens:     llm.DefaultMaxTokens,
		MaxInputChars: budget.DefaultMaxInputChars,
		PdftoppmCmd:   ocr.DefaultPdftoppm,
		TesseractCmd:  ocr.DefaultTesseract,
		OCRLang:       ocr.DefaultLang,
		OCRDPI:        ocr.DefaultDPI,
		OutputFormat:  output.FormatText,
	}
}
