package service

import (
	"context"
	"errors"
	"time"

	"github.com/AleLoredo/TasksAPI/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound indicates the token does not map to any session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates the session exists but has expired.
	ErrSessionExpired = errors.New("session expired")
)

// SessionRepository defines the persistence operations needed by the SessionService.
type SessionRepository interface {
	// CreateSession persists a token bound to userID until expiresAt.
	CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	// GetSession fetches a session by token, (nil, nil) if absent.
	GetSession(ctx context.Context, token string) (*models.Session, error)
	// DeleteSession removes the session for the given token.
	DeleteSession(ctx context.Context, token string) error
}

// SessionService issues, resolves and destroys server-side sessions.
type SessionService struct {
	sessions SessionRepository
	users    AuthRepository
	// ttl is the default session lifetime.
	ttl time.Duration
	// rememberTTL is the lifetime used when the client asks to be remembered.
	rememberTTL time.Duration
}

// NewSessionService constructs a SessionService over the given repositories.
func NewSessionService(sessions SessionRepository, users AuthRepository, ttl, rememberTTL time.Duration) *SessionService {
	return &SessionService{
		sessions:    sessions,
		users:       users,
		ttl:         ttl,
		rememberTTL: rememberTTL,
	}
}

// Create issues a new opaque token for the user and persists it.
// Returns the token and its expiry.
func (s *SessionService) Create(ctx context.Context, userID int64, remember bool) (string, time.Time, error) {
	token := uuid.NewString()

	ttl := s.ttl
	if remember {
		ttl = s.rememberTTL
	}
	expiresAt := time.Now().Add(ttl)

	if err := s.sessions.CreateSession(ctx, token, userID, expiresAt); err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Resolve maps a token to its authenticated user.
// Expired sessions are deleted on sight and reported as ErrSessionExpired;
// unknown tokens as ErrSessionNotFound.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.User, error) {
	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.DeleteSession(ctx, token)
		return nil, ErrSessionExpired
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}
	return user, nil
}

// Destroy invalidates the session server-side immediately.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}
