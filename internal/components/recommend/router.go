package recommend

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/hlog"

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

// Recommend handles GET /bookrcm?query=
// Collaborator failures come back as 200 with an error body; the vector
// store being down is not this service's failure.
func (r *Router) Recommend(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	query := req.URL.Query().Get("query")
	if query == "" {
		respond.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	books, err := r.service.Recommend(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Recommendation gateway failure")
		respond.GatewayError(w, err.Error())
		return
	}

	respond.JSON(w, http.StatusOK, RecommendOut{Results: books})
}

// Suggest handles GET /suggestions?query=
func (r *Router) Suggest(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	query := req.URL.Query().Get("query")
	if query == "" {
		respond.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	suggestions, err := r.service.Suggest(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Suggestion gateway failure")
		respond.GatewayError(w, err.Error())
		return
	}

	respond.JSON(w, http.StatusOK, SuggestOut{Suggestions: suggestions})
}

// Explain handles POST /explain
func (r *Router) Explain(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	var body ExplainIn
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Title == "" {
		respond.Error(w, http.StatusBadRequest, "title is required")
		return
	}

	reason, err := r.service.Explain(ctx, body)
	if err != nil {
		logger.Error().Err(err).Msg("Explanation gateway failure")
		respond.GatewayError(w, err.Error())
		return
	}

	respond.JSON(w, http.StatusOK, ExplainOut{Reason: reason})
}
