// Package llm wraps the OpenAI API for chat completions and query
// embeddings. Like the vector client it is a single shared handle guarded
// by a circuit breaker.
package llm

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/readnext/readnext/internal/shared/config"
)

var ErrEmptyCompletion = errors.New("empty completion from model")

type Client struct {
	api            *openai.Client
	chatModel      string
	embeddingModel string
	breaker        *gobreaker.CircuitBreaker[any]
	logger         zerolog.Logger
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		api:            openai.NewClient(cfg.OpenAIKey),
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		breaker: gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:        "openai",
			MaxRequests: 3,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("Circuit breaker state change")
			},
		}),
		logger: logger.With().Str("component", "llm").Logger(),
	}
}

// Complete requests a bounded chat completion for the given system and user
// prompts and returns the trimmed message text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			MaxTokens:   maxTokens,
			Temperature: temperature,
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", ErrEmptyCompletion
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

// Embed returns the embedding vector for a single query text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: []string{text},
			Model: openai.EmbeddingModel(c.embeddingModel),
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Data) == 0 {
			return nil, ErrEmptyCompletion
		}
		return resp.Data[0].Embedding, nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]float32), nil
}
