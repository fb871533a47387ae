package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResources is returned when discovery finds nothing to select from
	ErrNoResources = errors.New("no terraform resources found")

	// ErrCancelled marks a session the operator cancelled. It is reported, not treated as a failure.
	ErrCancelled = errors.New("cancelled")
)

// SpawnError is returned when the external executable could not be started
type SpawnError struct {
	Binary string
	Err    error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Binary, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// RenderError is returned when the terminal could not enter or leave interactive mode
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("terminal error: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ExitError carries the non-zero exit code of a completed child
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("terraform exited with status %d", e.Code)
}
