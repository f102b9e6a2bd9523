// Package llm sends the combined document to an OpenAI-compatible chat
// completion endpoint.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/docsum/internal/budget"
)

// Defaults for the local completion endpoint and sampling.
const (
	DefaultBaseURL      = "http://localhost:1234/v1"
	DefaultAPIKey       = "lm-studio"
	DefaultModel        = "mistral-7b-instruct-v0.1"
	DefaultSystemPrompt = "You are a helpful assistant."
	DefaultTemperature  = 0.7
	DefaultMaxTokens    = 1000
)

// ErrEmptyCompletion is returned when the endpoint answers without choices.
var ErrEmptyCompletion = errors.New("completion returned no choices")

// Completer turns a query and a document into a single model response.
type Completer struct {
	Client       Client
	Model        string
	SystemPrompt string
	Temperature  float32
	MaxTokens    int
	// MaxInputChars is how many leading characters of the document are sent.
	MaxInputChars int
}

// NewCompleter returns a Completer with the default model and sampling.
func NewCompleter(c Client) *Completer {
	return &Completer{
		Client:        c,
		Model:         DefaultModel,
		SystemPrompt:  DefaultSystemPrompt,
		Temperature:   DefaultTemperature,
		MaxTokens:     DefaultMaxTokens,
		MaxInputChars: budget.DefaultMaxInputChars,
	}
}

// UserMessage renders the user turn: the query, a blank line, then the first
// MaxInputChars characters of the document.
func (c *Completer) UserMessage(query, document string) string {
	return query + "\n\n" + budget.TruncateChars(document, c.MaxInputChars)
}

// Request builds the chat completion request without sending it.
func (c *Completer) Request(query, document string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: c.UserMessage(query, document)},
		},
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		Stream:      false,
	}
}

// Complete sends one request and returns the first choice's content. There
// is no retry.
func (c *Completer) Complete(ctx context.Context, query, document string) (string, error) {
	if c == nil || c.Client == nil {
		return "", errors.New("completion client not configured")
	}
	req := c.Request(query, document)

	promptTokens := budget.EstimatePromptTokens(req.Messages[0].Content, req.Messages[1].Content)
	if !budget.FitsInContext(c.Model, c.MaxTokens, promptTokens) {
		log.Warn().
			Str("model", c.Model).
			Int("prompt_tokens_est", promptTokens).
			Int("context", budget.ModelContextTokens(c.Model)).
			Msg("prompt may exceed model context")
	}
	log.Debug().Str("model", c.Model).Int("prompt_tokens_est", promptTokens).Int("max_tokens", c.MaxTokens).Msg("sending completion request")

	resp, err := c.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
