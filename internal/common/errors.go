// Package common defines sentinel errors shared across taskkeeper components.
// Callers match them with errors.Is; the HTTP layer is the only place that
// translates them into status codes.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorEmailExists        = errors.New("email already registered")
	ErrorWeakPassword       = errors.New("password too short")
	ErrorValidation         = errors.New("validation error")

	// Auth errors. All token verification failures (signature, expiry,
	// kind) collapse into ErrInvalidToken so callers cannot tell them apart.
	ErrInvalidToken = errors.New("invalid token")
)
