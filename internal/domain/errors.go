package domain

import "errors"

// Sentinel errors for the failure taxonomy shared by services and handlers.
// Services wrap these with context via fmt.Errorf("...: %w", Err...);
// handlers translate them to HTTP status codes with errors.Is.
var (
	// ErrValidation indicates missing or malformed input (HTTP 400)
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a duplicate unique field (HTTP 400)
	ErrConflict = errors.New("already exists")

	// ErrAuth indicates bad credentials or an invalid token (HTTP 401)
	ErrAuth = errors.New("unauthorized")

	// ErrNotFound indicates an unknown identifier (HTTP 404)
	ErrNotFound = errors.New("not found")
)
