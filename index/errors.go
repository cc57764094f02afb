package index

import "errors"

// Error values for index operations.
var (
	// ErrNotInitialized is returned by mutations before Init has been called.
	ErrNotInitialized = errors.New("index not initialized")

	// ErrNilPredicate is returned by Remove when no predicate is given.
	ErrNilPredicate = errors.New("nil predicate")
)
