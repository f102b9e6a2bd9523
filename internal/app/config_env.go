package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides overrides cfg fields with environment variables when the
// corresponding variables are set. Env sits above the config file and below
// flags.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLMBaseURL = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLMAPIKey = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLMModel = v
	}
	if v := os.Getenv("LLM_SYSTEM_PROMPT"); v != "" {
		cfg.SystemPrompt = v
	}
	if s := os.Getenv("LLM_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.LLMTimeout = d
		}
	}

	setInt := func(dst *int, envKey string) {
		if s := strings.TrimSpace(os.Getenv(envKey)); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				*dst = n
			}
		}
	}
	setInt(&cfg.MaxInputChars, "MAX_INPUT_CHARS")
	setInt(&cfg.MaxTokens, "LLM_MAX_TOKENS")
	setInt(&cfg.OCRDPI, "OCR_DPI")
	setInt(&cfg.OCRMaxPages, "OCR_MAX_PAGES")

	if v := os.Getenv("OCR_LANG"); v != "" {
		cfg.OCRLang = v
	}
	if v := os.Getenv("TESSERACT_CMD"); v != "" {
		cfg.TesseractCmd = v
	}
	if v := os.Getenv("PDFTOPPM_CMD"); v != "" {
		cfg.PdftoppmCmd = v
	}
	if v := os.Getenv("OCR_TESSDATA_DIR"); v != "" {
		cfg.TessdataDir = v
	}
	if v := os.Getenv("FETCH_USER_AGENT"); v != "" {
		cfg.FetchUserAgent = v
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("OUTPUT_FORMAT"))); v != "" {
		cfg.OutputFormat = v
	}

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, envKey string) {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			switch s {
			case "1", "true", "yes", "on":
				*dst = true
			case "0", "false", "no", "off":
				*dst = false
			}
		}
	}
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.PDFTextFallback, "PDF_TEXT_FALLBACK")
}
