package storage

import (
	"errors"
	"fmt"
)

// ErrExecutionNotFound marks an execution id that does not exist or belongs
// to another user. The two cases are indistinguishable on purpose so ids
// cannot be probed across users.
var ErrExecutionNotFound = errors.New("execution not found")

// ValidationError reports missing or malformed input. It is surfaced to the
// caller verbatim so the message must be actionable.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// PersistenceError wraps a store failure on the write path. The wrapped
// error is kept for logs; Error deliberately omits it so schema details
// never leak to clients.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage: %s failed", e.Op)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
