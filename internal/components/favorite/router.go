package favorite

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/readnext/readnext/internal/components/user"
	"github.com/readnext/readnext/internal/shared/middleware"
	"github.com/readnext/readnext/internal/shared/respond"
)

type (
	Router struct {
		service servicer
	}
)

func NewRouter(service servicer) *Router {
	return &Router{service: service}
}

// Add handles POST /favorites
func (r *Router) Add(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	var body AddFavoriteIn
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.BookID == "" {
		respond.Error(w, http.StatusBadRequest, "book_id is required")
		return
	}

	username := middleware.GetUsername(ctx)
	if err := r.service.Add(ctx, username, body.BookID); err != nil {
		r.writeServiceError(w, logger, err, "Error adding favorite")
		return
	}

	respond.JSON(w, http.StatusCreated, AddFavoriteOut{BookID: body.BookID})
}

// Remove handles DELETE /favorites/{bookID}
func (r *Router) Remove(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	bookID := chi.URLParam(req, "bookID")
	username := middleware.GetUsername(ctx)

	err := r.service.Remove(ctx, username, bookID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "favorite not found")
			return
		}
		r.writeServiceError(w, logger, err, "Error removing favorite")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// IsFavorite handles GET /is_favorite/{bookID}
func (r *Router) IsFavorite(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	bookID := chi.URLParam(req, "bookID")
	username := middleware.GetUsername(ctx)

	fav, err := r.service.IsFavorite(ctx, username, bookID)
	if err != nil {
		r.writeServiceError(w, logger, err, "Error checking favorite")
		return
	}

	respond.JSON(w, http.StatusOK, StatusOut{BookID: bookID, Favorite: fav})
}

// List handles GET /userfavorites
func (r *Router) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	username := middleware.GetUsername(ctx)

	books, err := r.service.List(ctx, username)
	if err != nil {
		r.writeServiceError(w, logger, err, "Error listing favorites")
		return
	}

	respond.JSON(w, http.StatusOK, ListOut{Results: books})
}

func (r *Router) writeServiceError(w http.ResponseWriter, logger *zerolog.Logger, err error, msg string) {
	if errors.Is(err, user.ErrNotFound) {
		// Token subject no longer exists.
		respond.Error(w, http.StatusUnauthorized, "unknown user")
		return
	}
	logger.Error().Err(err).Msg(msg)
	respond.Error(w, http.StatusInternalServerError, "internal server error")
}
