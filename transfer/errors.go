package transfer

import (
	"errors"
	"fmt"
)

var (
	// ErrIO marks failures reading the local file or its metadata.
	ErrIO = errors.New("local file error")
	// ErrTransport marks connection, timeout and stream failures during the HTTP exchange.
	ErrTransport = errors.New("transport error")
	// ErrCancelled marks uploads stopped because their context was cancelled.
	ErrCancelled = errors.New("upload cancelled")
)

// StatusError is a non-2xx answer from the server.
type StatusError struct {
	Op         string // "Upload" when empty
	StatusCode int
	Status     string // e.g. "401 Unauthorized"
	Body       string
}

func (e *StatusError) Error() string {
	op := e.Op
	if op == "" {
		op = "Upload"
	}
	return fmt.Sprintf("%s failed with status %s: %s", op, e.Status, e.Body)
}
