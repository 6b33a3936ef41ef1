package workflow

import "errors"

// Workflow errors. Handlers map these onto HTTP status codes.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidState      = errors.New("operation not permitted in current status")
	ErrValidation        = errors.New("invalid or missing field")
	ErrNotFound          = errors.New("appointment not found")
	ErrConflict          = errors.New("appointment was modified concurrently")
)
