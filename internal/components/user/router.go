package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/readnext/readnext/internal/shared/middleware"
	"github.com/readnext/readnext/internal/shared/respond"
)

type (
	Router struct {
		service Servicer
	}
)

func NewRouter(service Servicer) *Router {
	return &Router{service: service}
}

// Register handles POST /register
func (r *Router) Register(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	var body RegisterIn
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Username == "" || body.Email == "" || body.Password == "" {
		respond.Error(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	u, err := r.service.Register(ctx, body)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			logger.Warn().Str("username", body.Username).Msg("Registration conflict")
			respond.Error(w, http.StatusConflict, "username or email already exists")
			return
		}
		logger.Error().Err(err).Msg("Error registering user")
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logger.Debug().Str("username", u.Username).Msg("User registered")
	respond.JSON(w, http.StatusCreated, RegisterOut{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	})
}

// Login handles POST /login
func (r *Router) Login(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	var body LoginIn
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Identifier == "" || body.Password == "" {
		respond.Error(w, http.StatusBadRequest, "identifier and password are required")
		return
	}

	tok, err := r.service.Login(ctx, body)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn().Str("identifier", body.Identifier).Msg("Login failed: invalid credentials")
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		logger.Error().Err(err).Msg("Error logging in")
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logger.Debug().Str("identifier", body.Identifier).Msg("Login successful")
	respond.JSON(w, http.StatusOK, LoginOut{
		Token:     tok,
		TokenType: "bearer",
	})
}

// LoginInfo handles GET /logininfo (behind auth middleware)
func (r *Router) LoginInfo(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	username := middleware.GetUsername(ctx)

	u, err := r.service.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Token subject no longer exists, treat as unauthorized.
			respond.Error(w, http.StatusUnauthorized, "unknown user")
			return
		}
		logger.Error().Err(err).Msg("Error loading user info")
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respond.JSON(w, http.StatusOK, LoginInfoOut{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	})
}
