package cli

import (
	"errors"
	"fmt"

	"tfocus/internal/domain"
)

// Process exit codes
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitNoResources = 3
	ExitSpawnFailed = 127
	ExitCancelled   = 130
)

// UsageError is a command-line mistake
type UsageError struct {
	Msg  string
	Hint string
}

func (e *UsageError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s (%s)", e.Msg, e.Hint)
	}
	return e.Msg
}

// ExitCode maps the error a command returned to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var usageErr *UsageError
	var exitErr *domain.ExitError
	var spawnErr *domain.SpawnError

	switch {
	case errors.As(err, &usageErr):
		return ExitUsage
	case errors.Is(err, domain.ErrCancelled):
		return ExitCancelled
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.As(err, &spawnErr):
		return ExitSpawnFailed
	case errors.Is(err, domain.ErrNoResources):
		return ExitNoResources
	default:
		return ExitError
	}
}
