// Package vector wraps the Milvus collection holding the book corpus. The
// client is built once at startup and read concurrently by every request;
// it only ever issues read queries.
package vector

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/readnext/readnext/internal/shared/config"
)

// Book is the metadata record stored alongside each embedding. Fields are
// passed through to clients untouched.
type Book struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Authors       string  `json:"authors"`
	Description   string  `json:"description,omitempty"`
	Thumbnail     string  `json:"thumbnail,omitempty"`
	Publisher     string  `json:"publisher,omitempty"`
	PublishedYear int64   `json:"published_year,omitempty"`
	PageCount     int64   `json:"num_pages,omitempty"`
	Language      string  `json:"language,omitempty"`
	Categories    string  `json:"categories,omitempty"`
	Link          string  `json:"link,omitempty"`
	AverageRating float64 `json:"average_rating,omitempty"`
}

const (
	idField     = "id"
	vectorField = "vector"
)

var metadataFields = []string{
	"id", "title", "authors", "description", "thumbnail", "publisher",
	"published_year", "num_pages", "language", "categories", "link",
	"average_rating",
}

// Client is the shared handle to the vector collaborator. All calls run
// through a circuit breaker so a dead Milvus fails fast instead of tying up
// request goroutines.
type Client struct {
	milvus     client.Client
	collection string
	breaker    *gobreaker.CircuitBreaker[any]
	logger     zerolog.Logger
}

func NewClient(cfg *config.Config, logger zerolog.Logger) (*Client, error) {
	mc, err := client.NewClient(context.Background(), client.Config{
		Address: cfg.MilvusURI,
	})
	if err != nil {
		logger.Error().Err(err).Str("uri", cfg.MilvusURI).Msg("Failed to connect to Milvus")
		return nil, err
	}

	c := &Client{
		milvus:     mc,
		collection: cfg.MilvusCollection,
		breaker:    newBreaker("milvus", logger),
		logger:     logger.With().Str("component", "vector").Logger(),
	}

	// Search requires the collection in memory; loading an already loaded
	// collection is a no-op.
	if err := mc.LoadCollection(context.Background(), cfg.MilvusCollection, false); err != nil {
		logger.Warn().Err(err).Str("collection", cfg.MilvusCollection).Msg("Could not load collection, continuing anyway")
	}

	return c, nil
}

func newBreaker(name string, logger zerolog.Logger) *gobreaker.CircuitBreaker[any] {
	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
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
	})
}

func (c *Client) Close() error {
	return c.milvus.Close()
}

// Count returns the number of entities in the collection.
func (c *Client) Count(ctx context.Context) (int, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		stats, err := c.milvus.GetCollectionStatistics(ctx, c.collection)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(stats["row_count"])
		if err != nil {
			return 0, fmt.Errorf("unexpected row_count %q: %w", stats["row_count"], err)
		}
		return n, nil
	})
	if err != nil {
		return 0, err
	}
	return res.(int), nil
}

// Search runs a similarity search with the given query embedding and
// returns the ranked metadata records.
func (c *Client) Search(ctx context.Context, embedding []float32, k int) ([]Book, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		sp, err := entity.NewIndexFlatSearchParam()
		if err != nil {
			return nil, err
		}

		results, err := c.milvus.Search(
			ctx,
			c.collection,
			nil,
			"",
			metadataFields,
			[]entity.Vector{entity.FloatVector(embedding)},
			vectorField,
			entity.L2,
			k,
			sp,
		)
		if err != nil {
			return nil, err
		}

		var books []Book
		for _, r := range results {
			if r.Err != nil {
				return nil, r.Err
			}
			page, err := booksFromColumns(r.Fields, r.ResultCount)
			if err != nil {
				return nil, err
			}
			books = append(books, page...)
		}
		return books, nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]Book), nil
}

// GetByID fetches a single book record; (nil, nil) when no row matches.
func (c *Client) GetByID(ctx context.Context, id string) (*Book, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		rs, err := c.milvus.Query(
			ctx,
			c.collection,
			nil,
			fmt.Sprintf(`%s == "%s"`, idField, escapeExpr(id)),
			metadataFields,
		)
		if err != nil {
			return nil, err
		}

		n := resultSetLen(rs)
		if n == 0 {
			return (*Book)(nil), nil
		}
		books, err := booksFromColumns(rs, n)
		if err != nil {
			return nil, err
		}
		return &books[0], nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*Book), nil
}

// SuggestTitles returns up to limit titles starting with the given prefix.
func (c *Client) SuggestTitles(ctx context.Context, prefix string, limit int) ([]string, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		rs, err := c.milvus.Query(
			ctx,
			c.collection,
			nil,
			fmt.Sprintf(`title like "%s%%"`, escapeExpr(prefix)),
			[]string{"title"},
			client.WithLimit(int64(limit)),
		)
		if err != nil {
			return nil, err
		}

		var titles []string
		for _, col := range rs {
			if col.Name() != "title" {
				continue
			}
			for i := 0; i < col.Len(); i++ {
				v, err := col.Get(i)
				if err != nil {
					return nil, err
				}
				if s, ok := v.(string); ok {
					titles = append(titles, s)
				}
			}
		}
		return titles, nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]string), nil
}

// escapeExpr neutralizes quotes and backslashes in values interpolated into
// Milvus boolean expressions.
func escapeExpr(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

func resultSetLen(rs client.ResultSet) int {
	for _, col := range rs {
		return col.Len()
	}
	return 0
}

// booksFromColumns reassembles row records from the columnar result set.
func booksFromColumns(rs client.ResultSet, n int) ([]Book, error) {
	cols := make(map[string]entity.Column, len(rs))
	for _, col := range rs {
		cols[col.Name()] = col
	}

	books := make([]Book, 0, n)
	for i := 0; i < n; i++ {
		b := Book{
			ID:            stringAt(cols[idField], i),
			Title:         stringAt(cols["title"], i),
			Authors:       stringAt(cols["authors"], i),
			Description:   stringAt(cols["description"], i),
			Thumbnail:     stringAt(cols["thumbnail"], i),
			Publisher:     stringAt(cols["publisher"], i),
			PublishedYear: intAt(cols["published_year"], i),
			PageCount:     intAt(cols["num_pages"], i),
			Language:      stringAt(cols["language"], i),
			Categories:    stringAt(cols["categories"], i),
			Link:          stringAt(cols["link"], i),
			AverageRating: floatAt(cols["average_rating"], i),
		}
		books = append(books, b)
	}
	return books, nil
}

func stringAt(col entity.Column, i int) string {
	if col == nil || i >= col.Len() {
		return ""
	}
	v, err := col.Get(i)
	if err != nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

func intAt(col entity.Column, i int) int64 {
	if col == nil || i >= col.Len() {
		return 0
	}
	v, err := col.Get(i)
	if err != nil {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func floatAt(col entity.Column, i int) float64 {
	if col == nil || i >= col.Len() {
		return 0
	}
	v, err := col.Get(i)
	if err != nil {
		return 0
	}
	switch f := v.(type) {
	case float64:
		return f
	case float32:
		return float64(f)
	case int64:
		return float64(f)
	default:
		return 0
	}
}
