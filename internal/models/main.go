// Package models defines the core data structures for users, tasks and sessions.
package models

import "time"

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user, assigned by the store.
	ID int64
	// Username is the login name chosen by the user. Unique and immutable.
	Username string
	// PasswordHash is the bcrypt hash of the user's password. Never exposed.
	PasswordHash string
}

// Task is a single to-do item owned by exactly one user.
type Task struct {
	// ID is the unique identifier for the task.
	ID int64 `json:"id"`
	// Description is the task text, non-empty after trimming.
	Description string `json:"descripcion"`
	// Completed marks whether the task is done. Defaults to false.
	Completed bool `json:"completada"`
	// OwnerID references the owning user. Tasks are only ever visible
	// through requests authenticated as this user.
	OwnerID int64 `json:"-"`
}

// Session ties an opaque token to an authenticated user until it expires.
type Session struct {
	// Token is the opaque session identifier carried in the cookie.
	Token string
	// UserID is the authenticated user the token is bound to.
	UserID int64
	// ExpiresAt is the instant after which the session is invalid.
	ExpiresAt time.Time
}
