// Package output delivers the model response to a file or standard output.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// Output file formats.
const (
	// FormatText writes the response bytes verbatim, whatever the extension.
	FormatText = "text"
	// FormatPDF renders the response into a PDF document.
	FormatPDF = "pdf"
)

// Sink writes the response to Path when set, otherwise to Stdout.
type Sink struct {
	Path string
	// Format selects how a file is written; empty means FormatText.
	Format string
	Stdout io.Writer
}

// Write delivers response. With a path the file is overwritten and a
// confirmation line is printed; without one the response is printed under an
// "LLM Response:" header.
func (s Sink) Write(response string) error {
	stdout := s.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	if s.Path == "" {
		_, err := fmt.Fprintf(stdout, "\nLLM Response:\n\n%s\n", response)
		return err
	}
	if err := s.writeFile(response); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Debug().Str("out", s.Path).Str("format", s.format()).Int("bytes", len(response)).Msg("wrote output")
	_, err := fmt.Fprintf(stdout, "\nResponse written to %s\n", s.Path)
	return err
}

func (s Sink) format() string {
	if s.Format == "" {
		return FormatText
	}
	return s.Format
}

func (s Sink) writeFile(response string) error {
	switch s.format() {
	case FormatText:
		return os.WriteFile(s.Path, []byte(response), 0o644)
	case FormatPDF:
		return renderPDF(response, s.Path)
	default:
		return fmt.Errorf("unknown output format %q", s.Format)
	}
}
