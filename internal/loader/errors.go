package loader

import (
	"errors"
	"fmt"
)

// ErrCancelled is reported once the pipeline has been torn down. It never
// appears on the stage stream.
var ErrCancelled = errors.New("load pipeline cancelled")

// ErrAlreadyStarted is returned when a second consumer tries to attach.
var ErrAlreadyStarted = errors.New("load pipeline already started")

// ConfigurationError reports an unusable pipeline configuration. It is
// returned before any load attempt begins.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FetchError wraps a failure from the data source collaborator, including
// decode failures and failed connection resets.
type FetchError struct {
	Op    string
	Table string
	Err   error
}

func (e *FetchError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
