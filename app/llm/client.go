// Package llm wraps the chat-completion API behind a single Complete call.
// It speaks the openai-compatible protocol via langchaingo, so any
// conforming endpoint can serve it (including test doubles).
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var (
	// ErrEmptyCompletion indicates the completion API returned no content.
	ErrEmptyCompletion = errors.New("completion API returned empty content")

	// ErrInvalidConfig indicates missing client configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	// BaseURL is the base URL of the openai-compatible completion API.
	BaseURL string

	// APIKey authenticates requests to the completion API.
	APIKey string

	// Model is the completion model name.
	Model string
}

type Client struct {
	model llms.Model
	name  string
}

func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" || config.Model == "" {
		return nil, fmt.Errorf("%w: base URL and model are required", ErrInvalidConfig)
	}

	token := config.APIKey
	if token == "" {
		// langchaingo requires a token even for unauthenticated endpoints
		token = "unused"
	}

	model, err := openai.New(
		openai.WithBaseURL(config.BaseURL),
		openai.WithToken(token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	return &Client{model: model, name: config.Model}, nil
}

// Complete sends a single prompt and returns the completion text. There is
// no retry: a failed or empty completion aborts the calling stage.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
		llms.WithTemperature(0.7),
	)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	completion = strings.TrimSpace(completion)
	if completion == "" {
		return "", ErrEmptyCompletion
	}

	slog.Debug("Completion received", "model", c.name, "prompt_length", len(prompt), "completion_length", len(completion))

	return completion, nil
}
