// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AleLoredo/TasksAPI/internal/models"
	"github.com/AleLoredo/TasksAPI/internal/service"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// SessionResolver maps a session token to its authenticated user.
type SessionResolver interface {
	// Resolve returns the user bound to the token, or
	// service.ErrSessionNotFound / service.ErrSessionExpired.
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// SessionAuth is a middleware that gates protected endpoints behind a valid
// session cookie.
//
// Requests without a cookie, or whose token is unknown or expired, are
// rejected with a uniform 401 JSON body before any handler runs. On success
// the authenticated user is stored in the request context for downstream
// handlers.
func SessionAuth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := sessions.Resolve(r.Context(), cookie.Value)
			if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrSessionExpired) {
				unauthorized(w)
				return
			}
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Ocurrió un error inesperado"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// unauthorized writes the uniform 401 JSON payload. Never a redirect;
// this is a pure API.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "Acceso no autorizado. Por favor, inicia sesión.",
	})
}

// UserFromContext extracts the authenticated user from the request context.
// Returns nil if not found.
func UserFromContext(ctx context.Context) *models.User {
	val := ctx.Value(userKey)
	if u, ok := val.(*models.User); ok {
		return u
	}
	return nil
}
