package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/readnext/readnext/internal/shared/config"
	"github.com/readnext/readnext/internal/shared/llm"
	"github.com/readnext/readnext/internal/shared/vector"
)

const (
	systemPrompt = "You're a friendly and helpful book expert."

	explainMaxTokens   = 120
	explainTemperature = 0.7
	suggestLimit       = 10
)

// promptTemplate interpolates caller text verbatim. Prompt injection is a
// known, accepted risk here.
const promptTemplate = `You're a helpful book recommender.
Given this book:

Title: %s
Author(s): %s
Description: %s

Explain to the reader why they might like this book in 2-3 sentences.
`

type (
	// vectorStore is the slice of the vector collaborator used by the
	// recommendation gateway.
	vectorStore interface {
		Count(ctx context.Context) (int, error)
		Search(ctx context.Context, embedding []float32, k int) ([]vector.Book, error)
		SuggestTitles(ctx context.Context, prefix string, limit int) ([]string, error)
	}

	completer interface {
		Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error)
		Embed(ctx context.Context, text string) ([]float32, error)
	}

	servicer interface {
		Recommend(ctx context.Context, query string) ([]vector.Book, error)
		Suggest(ctx context.Context, query string) ([]string, error)
		Explain(ctx context.Context, req ExplainIn) (string, error)
	}

	service struct {
		store   vectorStore
		llm     completer
		timeout time.Duration
	}
)

func NewService(store *vector.Client, llmClient *llm.Client, cfg *config.Config) servicer {
	return &service{
		store:   store,
		llm:     llmClient,
		timeout: cfg.ExternalTimeout,
	}
}

// Recommend re-ranks the entire corpus by similarity to the query: k is the
// collection size, not a top-k cutoff.
func (s *service) Recommend(ctx context.Context, query string) ([]vector.Book, error) {
	countCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	total, err := s.store.Count(countCtx)
	if err != nil {
		return nil, err
	}

	embCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	embedding, err := s.llm.Embed(embCtx, query)
	if err != nil {
		return nil, err
	}

	searchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.store.Search(searchCtx, embedding, total)
}

func (s *service) Suggest(ctx context.Context, query string) ([]string, error) {
	suggestCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.store.SuggestTitles(suggestCtx, query, suggestLimit)
}

// Explain asks the model for a short reason the reader might like the book.
func (s *service) Explain(ctx context.Context, req ExplainIn) (string, error) {
	prompt := fmt.Sprintf(promptTemplate, req.Title, req.Authors, req.Description)

	explainCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.llm.Complete(explainCtx, systemPrompt, prompt, explainMaxTokens, explainTemperature)
}
