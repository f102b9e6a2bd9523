package extract

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// Fetcher retrieves a URL body and its Content-Type.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

// URL downloads a page and returns its visible text.
type URL struct {
	Fetcher Fetcher
}

func (u *URL) Extract(ctx context.Context, url string) string {
	if u == nil || u.Fetcher == nil {
		log.Error().Err(errors.New("fetcher not configured")).Str("source", url).Msg("Error fetching URL")
		return ""
	}
	body, contentType, err := u.Fetcher.Get(ctx, url)
	if err != nil {
		log.Error().Err(err).Str("source", url).Msg("Error fetching URL")
		return ""
	}
	return FromHTMLWithContentType(body, contentType).Text
}
