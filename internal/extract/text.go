package extract

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Text returns a file's full content verbatim. Content that is not valid
// UTF-8 yields "".
type Text struct{}

func (Text) Extract(_ context.Context, path string) string {
	b, err := readUTF8File(path)
	if err != nil {
		log.Error().Err(err).Str("source", path).Msg("Error reading TXT")
		return ""
	}
	return string(b)
}
