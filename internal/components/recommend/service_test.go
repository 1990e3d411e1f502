package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readnext/readnext/internal/shared/vector"
)

type fakeStore struct {
	count      int
	countErr   error
	books      []vector.Book
	searchErr  error
	gotK       int
	titles     []string
	suggestErr error
}

func (f *fakeStore) Count(context.Context) (int, error) {
	return f.count, f.countErr
}

func (f *fakeStore) Search(_ context.Context, _ []float32, k int) ([]vector.Book, error) {
	f.gotK = k
	return f.books, f.searchErr
}

func (f *fakeStore) SuggestTitles(context.Context, string, int) ([]string, error) {
	return f.titles, f.suggestErr
}

type fakeLLM struct {
	completion  string
	completeErr error
	gotPrompt   string
	embedding   []float32
	embedErr    error
}

func (f *fakeLLM) Complete(_ context.Context, _, userPrompt string, _ int, _ float32) (string, error) {
	f.gotPrompt = userPrompt
	return f.completion, f.completeErr
}

func (f *fakeLLM) Embed(context.Context, string) ([]float32, error) {
	return f.embedding, f.embedErr
}

func newTestService(store vectorStore, llm completer) *service {
	return &service{store: store, llm: llm, timeout: time.Second}
}

func TestRecommendRanksWholeCorpus(t *testing.T) {
	store := &fakeStore{
		count: 1234,
		books: []vector.Book{{ID: "b1", Title: "First"}},
	}
	svc := newTestService(store, &fakeLLM{embedding: []float32{0.1, 0.2}})

	books, err := svc.Recommend(context.Background(), "teen")
	require.NoError(t, err)

	// k equals the collection size: a full re-ranking, not top-k.
	assert.Equal(t, 1234, store.gotK)
	require.Len(t, books, 1)
	assert.Equal(t, "First", books[0].Title)
}

func TestRecommendStoreUnreachable(t *testing.T) {
	store := &fakeStore{countErr: errors.New("milvus unreachable")}
	svc := newTestService(store, &fakeLLM{embedding: []float32{0.1}})

	_, err := svc.Recommend(context.Background(), "teen")
	assert.ErrorContains(t, err, "unreachable")
}

func TestRecommendEmbeddingFailure(t *testing.T) {
	store := &fakeStore{count: 10}
	svc := newTestService(store, &fakeLLM{embedErr: errors.New("llm down")})

	_, err := svc.Recommend(context.Background(), "teen")
	assert.ErrorContains(t, err, "llm down")
}

func TestSuggest(t *testing.T) {
	store := &fakeStore{titles: []string{"The Hobbit", "The Hunger Games"}}
	svc := newTestService(store, &fakeLLM{})

	got, err := svc.Suggest(context.Background(), "The H")
	require.NoError(t, err)
	assert.Equal(t, []string{"The Hobbit", "The Hunger Games"}, got)
}

func TestExplainPromptShape(t *testing.T) {
	llm := &fakeLLM{completion: "You might like it."}
	svc := newTestService(&fakeStore{}, llm)

	reason, err := svc.Explain(context.Background(), ExplainIn{
		Title:       "Dune",
		Authors:     "Frank Herbert",
		Description: "Desert planet politics.",
	})
	require.NoError(t, err)
	assert.Equal(t, "You might like it.", reason)

	// Fields are interpolated verbatim into the fixed template.
	assert.Contains(t, llm.gotPrompt, "Title: Dune")
	assert.Contains(t, llm.gotPrompt, "Author(s): Frank Herbert")
	assert.Contains(t, llm.gotPrompt, "Description: Desert planet politics.")
}
