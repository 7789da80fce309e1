package threads

import (
	"errors"
	"fmt"
)

// ErrNoThreadParent reports a thread-create payload without a parent channel
// id. Threads always belong to a channel, so a missing parent is surfaced
// instead of silently skipped.
var ErrNoThreadParent = errors.New("thread has no parent channel id")

// APIError wraps a Discord REST failure, transport and body decoding alike.
type APIError struct {
	Op  string
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord api: %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// Kind buckets an error for log attributes and metric labels.
func Kind(err error) string {
	var apiErr *APIError
	switch {
	case errors.Is(err, ErrNoThreadParent):
		return "missing_parent"
	case errors.As(err, &apiErr):
		return "remote_api"
	default:
		return "unknown"
	}
}
