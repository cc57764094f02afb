package server

import "errors"

// Sentinel errors for consistent error handling.
var (
	ErrMissingIndex   = errors.New("server: index is required")
	ErrInvalidRequest = errors.New("invalid request")
)
