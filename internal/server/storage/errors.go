package storage

import "errors"

// Common storage errors. The resolver wraps these with the identifying
// key; handlers map them to 404/409.
var (
	// ErrNotFound indicates that the requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a uniqueness-constraint violation
	ErrDuplicate = errors.New("already exists")
)
