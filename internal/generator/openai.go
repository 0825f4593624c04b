package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrAPIKeyMissing means the generation credential was never configured.
// Callers must not retry; this is a deployment problem, not a transient
// failure.
var ErrAPIKeyMissing = errors.New("generation API key is not configured")

const (
	model          = openai.GPT4oMini
	temperature    = 0.9
	maxTokens      = 1000
	requestTimeout = 60 * time.Second
)

// Generator produces free-form result text from an OpenAI-compatible
// chat completion API. One request per call; no retries.
type Generator struct {
	client *openai.Client
	apiKey string
}

// New builds a Generator. baseURL overrides the API endpoint and is
// empty in production.
func New(apiKey, baseURL string) *Generator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Generator{
		client: openai.NewClientWithConfig(cfg),
		apiKey: apiKey,
	}
}

// Generate sends the per-test system message and the composed prompt and
// returns the first choice's text. The missing-credential case is
// detected before any network traffic.
func (g *Generator) Generate(ctx context.Context, systemMessage, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", ErrAPIKeyMissing
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
