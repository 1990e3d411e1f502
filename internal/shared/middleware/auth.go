package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/readnext/readnext/internal/shared/respond"
	"github.com/readnext/readnext/internal/shared/token"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const usernameKey contextKey = "username"

// WithUsername returns a context carrying the authenticated username
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// GetUsername extracts the authenticated username from the request context
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}

// NewAuthMiddleware creates authentication middleware that validates bearer
// tokens and protects routes from unauthorized access. The token subject is
// added to the request context for downstream handlers.
func NewAuthMiddleware(issuer *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				respond.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			username, err := issuer.Validate(tokenString)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := WithUsername(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
