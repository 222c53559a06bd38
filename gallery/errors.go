package gallery

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced album or image row is gone.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied means an anonymous identity attempted an owner-only
	// operation. It is raised before the store is contacted.
	ErrPermissionDenied = errors.New("permission denied")
)

// StoreError wraps a remote read/write failure with the operation that hit
// it. The session never retries; callers surface the message to the user.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError reports a malformed input field before anything is
// persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
