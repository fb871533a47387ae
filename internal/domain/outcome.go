package domain

import (
	"fmt"
	"time"
)

// OutcomeKind classifies how a run ended
type OutcomeKind int

const (
	Completed OutcomeKind = iota
	TerminatedByCancellation
	SpawnFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case Completed:
		return "completed"
	case TerminatedByCancellation:
		return "cancelled"
	case SpawnFailed:
		return "spawn failed"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the result of one ProcessRunner run
type Outcome struct {
	Kind     OutcomeKind
	ExitCode int   // meaningful for Completed only
	Err      error // set for SpawnFailed
	Forced   bool  // the child had to be killed after the grace period
	Duration time.Duration
}

// Success reports whether the child completed with exit code 0
func (o Outcome) Success() bool {
	return o.Kind == Completed && o.ExitCode == 0
}
