package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"recircle/internal/auth"
	"recircle/internal/db"
	"recircle/internal/models"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// AuthMiddleware gates protected routes behind a bearer token and
// resolves the token's user for downstream handlers.
type AuthMiddleware struct {
	tokens *auth.TokenService
	users  *db.UserRepository
}

func NewAuthMiddleware(tokens *auth.TokenService, users *db.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.tokens.Validate(parts[1])
		if err != nil {
			unauthorized(w, "Invalid or expired token")
			return
		}

		user, err := m.users.FindByID(r.Context(), claims.UserID)
		if errors.Is(err, db.ErrNotFound) {
			unauthorized(w, "User not found")
			return
		}
		if err != nil {
			slog.Error("error resolving token user", "error", err)
			internalError(w)
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the authenticated user attached by RequireAuth, or
// nil on unprotected routes.
func CurrentUser(r *http.Request) *models.User {
	if u, ok := r.Context().Value(currentUserKey).(*models.User); ok {
		return u
	}
	return nil
}
