// Package infer turns free-form requirement text into a service selection by
// delegating to an external completion service, with a deterministic keyword
// fallback and a bounded wait.
package infer

import (
	"context"
	"errors"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
)

// CompletionClient is the external completion-service boundary: one prompt
// in, one text completion out (or an error / timeout). No conversation state,
// no retries.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient implements CompletionClient against the OpenAI chat API.
type OpenAIClient struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

// NewOpenAIClient builds a client for the given API key and model. The model
// defaults to gpt-4o-mini.
func NewOpenAIClient(apiKey, model string, log *slog.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("infer: missing API key")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if log == nil {
		log = slog.Default()
	}
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model, log: log}, nil
}

// Complete sends a single-turn chat completion.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a cloud architecture assistant. Respond with a single JSON object."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		c.log.Warn("completion call failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("infer: completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
