// Package common defines shared sentinel errors used across the server
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Ownership-scoped lookups resolve cross-user access and missing rows to
	// the same error, so responses never reveal which one it was.
	ErrBookNotFound    = errors.New("book not found")
	ErrSectionNotFound = errors.New("section not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrEmailTaken     = errors.New("email already registered")

	// Auth errors.
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Cipher errors.
	ErrConfiguration = errors.New("invalid cipher configuration")
	ErrDecryption    = errors.New("decryption failed")
)
