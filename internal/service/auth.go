// Package service provides business logic for authentication, sessions and
// task management, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AleLoredo/TasksAPI/internal/models"
	"github.com/AleLoredo/TasksAPI/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("missing or invalid input")
	// ErrDuplicateUser indicates the username is already taken.
	ErrDuplicateUser = errors.New("username already taken")
	// ErrInvalidCredentials indicates that the provided username or password
	// was incorrect. Unknown users and wrong passwords are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// dummyHash is a valid bcrypt hash compared against when the username is
// unknown, so both failure paths cost one bcrypt comparison.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthRepository defines the persistence operations
// required by the authentication service.
type AuthRepository interface {
	// CreateUser persists a new user and returns the assigned id.
	// Returns repository.ErrDuplicateUser when the username is taken.
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)
	// GetUserByUsername fetches a user by username, (nil, nil) if absent.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByID fetches a user by id, (nil, nil) if absent.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthService implements registration and credential verification by
// delegating to an AuthRepository.
type AuthService struct {
	// repo performs the data-layer operations.
	repo AuthRepository
}

// NewAuthService constructs a new AuthService using the provided repository.
// repo must implement AuthRepository.
func NewAuthService(repo AuthRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Register hashes the password and persists a new user, returning its id.
// Empty username or password yields ErrValidation; a taken username yields
// ErrDuplicateUser.
func (s *AuthService) Register(ctx context.Context, username, password string) (int64, error) {
	if username == "" || password == "" {
		return 0, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.repo.CreateUser(ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return 0, ErrDuplicateUser
		}
		return 0, err
	}
	return id, nil
}

// Verify checks the supplied credentials and returns the matching user.
// Both an unknown username and a wrong password return ErrInvalidCredentials.
func (s *AuthService) Verify(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Burn a comparison so unknown users cost the same as bad passwords.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
