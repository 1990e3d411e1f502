package favorite

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readnext/readnext/internal/shared/middleware"
	"github.com/readnext/readnext/internal/shared/vector"
)

// fakeFavService implements servicer with canned results.
type fakeFavService struct {
	addErr    error
	removeErr error
	favorite  bool
	favErr    error
	books     []vector.Book
	listErr   error
}

func (f *fakeFavService) Add(context.Context, string, string) error    { return f.addErr }
func (f *fakeFavService) Remove(context.Context, string, string) error { return f.removeErr }
func (f *fakeFavService) IsFavorite(context.Context, string, string) (bool, error) {
	return f.favorite, f.favErr
}
func (f *fakeFavService) List(context.Context, string) ([]vector.Book, error) {
	return f.books, f.listErr
}

// serveAs routes the request through chi so URL params resolve, with the
// username already in context as the auth middleware would leave it.
func serveAs(t *testing.T, svc servicer, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := NewRouter(svc)
	mux := chi.NewRouter()
	mux.Post("/favorites", router.Add)
	mux.Get("/userfavorites", router.List)
	mux.Get("/is_favorite/{bookID}", router.IsFavorite)
	mux.Delete("/favorites/{bookID}", router.Remove)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(middleware.WithUsername(req.Context(), "alice"))
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRouterAdd(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeFavService
		expectedCode int
	}{
		{name: "invalid JSON", body: "{", service: &fakeFavService{}, expectedCode: http.StatusBadRequest},
		{name: "missing book_id", body: `{}`, service: &fakeFavService{}, expectedCode: http.StatusBadRequest},
		{name: "created", body: `{"book_id":"b1"}`, service: &fakeFavService{}, expectedCode: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveAs(t, tt.service, "POST", "/favorites", tt.body)
			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestRouterRemove(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		rec := serveAs(t, &fakeFavService{}, "DELETE", "/favorites/b1", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		rec := serveAs(t, &fakeFavService{removeErr: ErrNotFound}, "DELETE", "/favorites/b1", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error"`)
	})
}

func TestRouterIsFavorite(t *testing.T) {
	rec := serveAs(t, &fakeFavService{favorite: true}, "GET", "/is_favorite/b1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var out StatusOut
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "b1", out.BookID)
	assert.True(t, out.Favorite)
}

func TestRouterList(t *testing.T) {
	books := []vector.Book{
		{ID: "b1", Title: "First"},
		{ID: "b2", Title: "Second"},
	}
	rec := serveAs(t, &fakeFavService{books: books}, "GET", "/userfavorites", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var out ListOut
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	require.Len(t, out.Results, 2)
	assert.Equal(t, "First", out.Results[0].Title)
}
