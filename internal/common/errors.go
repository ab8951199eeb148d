// Package common contains shared constants and sentinel errors used across
// accountsvc components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// The five user-visible error kinds. Handlers map every failure to
	// exactly one of them; raw store/cache errors never cross the
	// transport boundary.
	ErrNotFound         = errors.New("not found")
	ErrAuthFailed       = errors.New("authentication failed, invalid username, email, phone or password")
	ErrUserExists       = errors.New("user exists")
	ErrValidationFailed = errors.New("validation failed")
	ErrUnauthorized     = errors.New("Unauthorized")

	// Internal flow control, translated before reaching a caller.
	ErrInternal = errors.New("internal error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
