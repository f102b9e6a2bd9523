package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/docsum/internal/output"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	LLM struct {
		BaseURL      string   `yaml:"base" json:"base"`
		APIKey       string   `yaml:"key" json:"key"`
		Model        string   `yaml:"model" json:"model"`
		SystemPrompt string   `yaml:"systemPrompt" json:"systemPrompt"`
		Temperature  *float32 `yaml:"temperature" json:"temperature"`
		MaxTokens    int      `yaml:"maxTokens" json:"maxTokens"`
		Timeout      duration `yaml:"timeout" json:"timeout"`
	} `yaml:"llm" json:"llm"`

	Limits struct {
		MaxInputChars int `yaml:"maxInputChars" json:"maxInputChars"`
	} `yaml:"limits" json:"limits"`

	OCR struct {
		Pdftoppm     string `yaml:"pdftoppm" json:"pdftoppm"`
		Tesseract    string `yaml:"tesseract" json:"tesseract"`
		Lang         string `yaml:"lang" json:"lang"`
		DPI          int    `yaml:"dpi" json:"dpi"`
		MaxPages     int    `yaml:"maxPages" json:"maxPages"`
		TessdataDir  string `yaml:"tessdataDir" json:"tessdataDir"`
		TextFallback bool   `yaml:"textFallback" json:"textFallback"`
	} `yaml:"ocr" json:"ocr"`

	Fetch struct {
		UserAgent string   `yaml:"userAgent" json:"userAgent"`
		Timeout   duration `yaml:"timeout" json:"timeout"`
	} `yaml:"fetch" json:"fetch"`

	Output struct {
		Format string `yaml:"format" json:"format"`
	} `yaml:"output" json:"output"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// duration accepts Go duration strings such as "90s" in both YAML and JSON.
// A bare JSON number is taken as nanoseconds.
type duration time.Duration

func (d *duration) UnmarshalJSON(b []byte) error {
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*d = duration(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	return d.parse(s)
}

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	return d.parse(s)
}

func (d *duration) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	*d = duration(v)
	return nil
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays every value set in fc onto cfg. It runs before env
// and flags, which take precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	setStr := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	setStr(&cfg.LLMBaseURL, fc.LLM.BaseURL)
	setStr(&cfg.LLMAPIKey, fc.LLM.APIKey)
	setStr(&cfg.LLMModel, fc.LLM.Model)
	setStr(&cfg.SystemPrompt, fc.LLM.SystemPrompt)
	if fc.LLM.Temperature != nil {
		cfg.Temperature = *fc.LLM.Temperature
	}
	if fc.LLM.MaxTokens > 0 {
		cfg.MaxTokens = fc.LLM.MaxTokens
	}
	if fc.LLM.Timeout > 0 {
		cfg.LLMTimeout = time.Duration(fc.LLM.Timeout)
	}
	if fc.Limits.MaxInputChars > 0 {
		cfg.MaxInputChars = fc.Limits.MaxInputChars
	}

	setStr(&cfg.PdftoppmCmd, fc.OCR.Pdftoppm)
	setStr(&cfg.TesseractCmd, fc.OCR.Tesseract)
	setStr(&cfg.OCRLang, fc.OCR.Lang)
	if fc.OCR.DPI > 0 {
		cfg.OCRDPI = fc.OCR.DPI
	}
	if fc.OCR.MaxPages > 0 {
		cfg.OCRMaxPages = fc.OCR.MaxPages
	}
	setStr(&cfg.TessdataDir, fc.OCR.TessdataDir)
	if fc.OCR.TextFallback {
		cfg.PDFTextFallback = true
	}

	setStr(&cfg.FetchUserAgent, fc.Fetch.UserAgent)
	if fc.Fetch.Timeout > 0 {
		cfg.FetchTimeout = time.Duration(fc.Fetch.Timeout)
	}
	setStr(&cfg.OutputFormat, strings.ToLower(strings.TrimSpace(fc.Output.Format)))
	if fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal validation for required settings.
func ValidateConfig(cfg Config) error {
	if len(cfg.Sources) == 0 {
		return errors.New("config: at least one input file or URL is required")
	}
	if strings.TrimSpace(cfg.LLMBaseURL) == "" {
		return errors.New("config: llm.base is required (or set LLM_BASE_URL)")
	}
	if strings.TrimSpace(cfg.LLMModel) == "" {
		return errors.New("config: llm.model is required (or set LLM_MODEL)")
	}
	if cfg.MaxInputChars < 0 || cfg.MaxTokens < 0 || cfg.OCRDPI < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if cfg.LLMTimeout < 0 || cfg.FetchTimeout < 0 {
		return errors.New("config: negative timeouts are not allowed")
	}
	if cfg.OCRMaxPages < 0 {
		return errors.New("config: ocr.maxPages must not be negative")
	}
	switch cfg.OutputFormat {
	case "", output.FormatText, output.FormatPDF:
	default:
		return fmt.Errorf("config: unknown output.format %q (want %s or %s)", cfg.OutputFormat, output.FormatText, output.FormatPDF)
	}
	return nil
}
