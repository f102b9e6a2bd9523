package llm

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface needed to call a chat model. It mirrors
// go-openai's CreateChatCompletion so any OpenAI-compatible backend, or a
// stub in tests, can be plugged in.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Endpoint describes where the OpenAI-compatible server lives.
type Endpoint struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewOpenAIClient builds a go-openai client for the endpoint.
func NewOpenAIClient(ep Endpoint) *openai.Client {
	cfg := openai.DefaultConfig(ep.APIKey)
	if ep.BaseURL != "" {
		cfg.BaseURL = ep.BaseURL
	}
	if ep.HTTPClient != nil {
		cfg.HTTPClient = ep.HTTPClient
	}
	return openai.NewClientWithConfig(cfg)
}

var _ Client = (*openai.Client)(nil)
