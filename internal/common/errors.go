// Package common defines shared constants and sentinel errors used across
// client and server layers of GeoSick. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth-flow errors, surfaced verbatim to the user.
	ErrorInvalidCredentials = errors.New("incorrect password")
	ErrorPasswordMismatch   = errors.New("passwords do not match")
	ErrorMissingFields      = errors.New("all required fields must be filled out")
	ErrorDuplicatePhone     = errors.New("this phone number is already registered")

	// Token errors (invalid, malformed or expired).
	ErrInvalidToken = errors.New("invalid token")
)
