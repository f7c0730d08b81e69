// Package llm wraps the chat completion endpoint used for summaries and translations.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("llm api key not set")

// Client sends a single-turn prompt and returns the model's text.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config selects the endpoint and model.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAI implements Client against any OpenAI-compatible chat completions API,
// including Gemini's compatibility endpoint.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI builds a client. Retries are disabled: a failed call fails the request.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return &OpenAI{client: openai.NewClient(opts...), model: cfg.Model}, nil
}

// Complete sends prompt as a user message and returns the first choice.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Unconfigured is a Client that always fails with ErrMissingAPIKey. It lets the
// service start without a key so that the missing setting is reported per request.
type Unconfigured struct{}

// Complete always returns ErrMissingAPIKey.
func (Unconfigured) Complete(context.Context, string) (string, error) {
	return "", ErrMissingAPIKey
}
