// Package common defines shared constants and sentinel errors used across
// client and server layers of Street Smarts. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrValidation     = errors.New("validation error")

	// Game-specific errors.
	ErrNoLocations      = errors.New("no locations available")
	ErrImageUnavailable = errors.New("image unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
