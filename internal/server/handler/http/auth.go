// Package http provides the HTTP handlers for the task-list API:
// registration, session login/logout and owner-scoped task operations.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AleLoredo/TasksAPI/internal/middleware"
	"github.com/AleLoredo/TasksAPI/internal/models"
	"github.com/AleLoredo/TasksAPI/internal/service"
	"go.uber.org/zap"
)

// AuthService defines the authentication operations required by the HTTP handlers.
type AuthService interface {
	// Register creates a new user and returns its id.
	Register(ctx context.Context, username, password string) (int64, error)
	// Verify checks credentials and returns the matching user.
	Verify(ctx context.Context, username, password string) (*models.User, error)
}

// SessionManager defines the session lifecycle operations required by the
// HTTP handlers.
type SessionManager interface {
	// Create issues a new session token for the user.
	Create(ctx context.Context, userID int64, remember bool) (string, time.Time, error)
	// Resolve maps a token to its authenticated user.
	Resolve(ctx context.Context, token string) (*models.User, error)
	// Destroy invalidates the token server-side.
	Destroy(ctx context.Context, token string) error
}

// AuthHandler handles HTTP requests for registration, login, logout and
// session status.
type AuthHandler struct {
	// Auth performs the underlying authentication operations.
	Auth AuthService
	// Sessions manages the session lifecycle.
	Sessions SessionManager
	// Log receives server-side detail for unexpected failures.
	Log *zap.Logger
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	// Usuario is the username to register.
	Usuario string `json:"usuario"`
	// Contrasena is the plaintext password, hashed before storage.
	Contrasena string `json:"contraseña"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Usuario    string `json:"usuario"`
	Contrasena string `json:"contraseña"`
	// Recordar extends the session lifetime when true.
	Recordar bool `json:"recordar"`
}

// Register handles user registration requests.
// It expects a JSON body with non-empty "usuario" and "contraseña" fields.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Faltan datos de usuario o contraseña")
		return
	}
	if req.Usuario == "" || req.Contrasena == "" {
		writeError(w, http.StatusBadRequest, "Usuario y contraseña no pueden estar vacíos")
		return
	}

	id, err := h.Auth.Register(r.Context(), req.Usuario, req.Contrasena)
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, "Usuario y contraseña no pueden estar vacíos")
		return
	case errors.Is(err, service.ErrDuplicateUser):
		writeError(w, http.StatusConflict, "El nombre de usuario ya existe")
		return
	case err != nil:
		h.Log.Error("register failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Ocurrió un error durante el registro")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"mensaje": "Usuario registrado exitosamente",
		"id":      id,
	})
}

// Login handles credential login requests and sets the session cookie.
// A request that already carries a valid session succeeds without issuing a
// new one.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		if user, err := h.Sessions.Resolve(r.Context(), cookie.Value); err == nil {
			writeJSON(w, http.StatusOK, map[string]any{
				"mensaje": "Usuario ya autenticado",
				"usuario": user.Username,
			})
			return
		}
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Usuario == "" || req.Contrasena == "" {
		writeError(w, http.StatusBadRequest, "Faltan datos de usuario o contraseña")
		return
	}

	user, err := h.Auth.Verify(r.Context(), req.Usuario, req.Contrasena)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}
	if err != nil {
		h.Log.Error("login failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Ocurrió un error inesperado")
		return
	}

	token, expiresAt, err := h.Sessions.Create(r.Context(), user.ID, req.Recordar)
	if err != nil {
		h.Log.Error("session create failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Ocurrió un error inesperado")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"mensaje": "Inicio de sesión exitoso",
		"usuario": user.Username,
	})
}

// Logout invalidates the session server-side and clears the cookie.
// The route is session-gated, so the cookie is present here.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		if err := h.Sessions.Destroy(r.Context(), cookie.Value); err != nil {
			h.Log.Error("session destroy failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Ocurrió un error inesperado")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"mensaje": "Sesión cerrada exitosamente",
	})
}

// Status reports the authenticated user bound to the current session.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Acceso no autorizado. Por favor, inicia sesión.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"autenticado": true,
		"usuario_id":  user.ID,
		"usuario":     user.Username,
	})
}
