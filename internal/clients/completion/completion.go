// Package completion wraps the OpenAI chat-completions API.
package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// systemPrompt is the fixed instruction prepended to every conversation.
	systemPrompt = "あなたは親切で知識豊富なアシスタントです。日本語で丁寧に回答してください。"

	// fallbackText is what the user sees when the completion call fails.
	fallbackText = "申し訳ございませんが、エラーが発生しました。しばらくしてから再度お試しください。"

	maxTokens      = 1000
	temperature    = 0.7
	defaultTimeout = 30 * time.Second
)

// Client calls the chat-completions API with a fixed system instruction,
// bounded output length and fixed sampling temperature.
type Client struct {
	api    *openai.Client
	model  string
	logger zerolog.Logger
}

// New creates a Client. baseURL overrides the API endpoint when non-empty;
// tests and OpenAI-compatible backends use this, production leaves it empty.
func New(apiKey, model, baseURL string, logger zerolog.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}

	return &Client{
		api:    openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// Complete sends the system instruction plus the user's message and returns
// the completion text.
func (c *Client) Complete(ctx context.Context, message, userID string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteWithFallback never fails: on any remote error it logs the cause
// and returns a fixed apology so the conversation still gets an answer.
func (c *Client) CompleteWithFallback(ctx context.Context, message, userID string) string {
	text, err := c.Complete(ctx, message, userID)
	if err != nil {
		c.logger.Error().Err(err).Str("user", userID).Msg("Completion request failed, using fallback text")
		return fallbackText
	}
	return text
}

// FallbackText returns the apology substituted when the remote call fails.
func FallbackText() string {
	return fallbackText
}
