package batch

import (
	"errors"
	"fmt"

	"github.com/xufanglin/rimmich/tool"
)

var (
	// ErrInvalidConcurrency is the same sentinel the settings store rejects out of range values with.
	ErrInvalidConcurrency = tool.ErrInvalidConcurrency
	ErrMissingCredentials = errors.New("server url and api key are required")
	// ErrTaskExecution marks a worker that died without producing an upload result.
	ErrTaskExecution   = errors.New("upload task failed unexpectedly")
	ErrCoordinatorUsed = errors.New("batch coordinator can only run once")
)

// ConfigError rejects a batch before any worker starts.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid batch %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// MissingCredentials builds the error for a user without a stored api key.
func MissingCredentials(user string) error {
	if user == "" {
		return &ConfigError{Field: "credentials", Err: ErrMissingCredentials}
	}
	return &ConfigError{Field: "credentials", Err: fmt.Errorf("%w: no api key for user %s", ErrMissingCredentials, user)}
}
