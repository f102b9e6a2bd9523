package extract

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// CSV renders each row as its fields joined by ", ", one row per line. An
// empty line is an empty row and renders as a bare newline.
type CSV struct{}

func (CSV) Extract(_ context.Context, path string) string {
	text, err := readCSV(path)
	if err != nil {
		log.Error().Err(err).Str("source", path).Msg("Error reading CSV")
		return ""
	}
	return text
}

func readCSV(path string) (string, error) {
	data, err := readUTF8File(path)
	if err != nil {
		return "", err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable field counts

	var sb strings.Builder
	next := 1 // first line not yet accounted for
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		// encoding/csv skips empty lines; restore them from line positions.
		start, _ := reader.FieldPos(0)
		sb.WriteString(strings.Repeat("\n", start-next))

		sb.WriteString(strings.Join(record, ", "))
		sb.WriteString("\n")

		last := len(record) - 1
		end, _ := reader.FieldPos(last)
		next = end + strings.Count(record[last], "\n") + 1
	}
	if trailing := lineCount(data) - (next - 1); trailing > 0 {
		sb.WriteString(strings.Repeat("\n", trailing))
	}
	return sb.String(), nil
}

// lineCount counts lines the way a line-oriented reader does: a final line
// without a terminator still counts.
func lineCount(data []byte) int {
	n := bytes.Count(data, []byte("\n"))
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}
