// Package common defines shared sentinel errors used across the service
// layers of TaskKeeper. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Signup/signin validation and conflicts.
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")

	// Task validation and limits.
	ErrInvalidTitle       = errors.New("title must be 1-200 characters")
	ErrInvalidDescription = errors.New("description must be under 1000 characters")
	ErrTaskLimitReached   = errors.New("maximum task limit reached")

	// Resource lookups. Both conflate "absent" and "not yours" so that the
	// existence of other users' resources never leaks.
	ErrTaskNotFound         = errors.New("task not found")
	ErrConversationNotFound = errors.New("conversation not found")
)
