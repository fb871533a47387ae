// Package interrupt turns asynchronous interrupt signals into a flag the
// menu loop and the runner poll.
package interrupt

import (
	"sync"
	"sync/atomic"
)

// Token is a one-shot cancellation flag. The zero value is not usable; use NewToken.
type Token struct {
	armed atomic.Bool
	once  sync.Once
	done  chan struct{}
}

// NewToken returns an unarmed token
func NewToken() *Token {
	return &Token{done: make(chan struct{})}
}

// Arm marks the token as cancelled. It reports true only for the call that armed it;
// later calls are no-ops.
func (t *Token) Arm() bool {
	if !t.armed.CompareAndSwap(false, true) {
		return false
	}
	t.once.Do(func() { close(t.done) })
	return true
}

// Armed reports whether the token has been armed
func (t *Token) Armed() bool {
	return t.armed.Load()
}

// Done is closed when the token is armed
func (t *Token) Done() <-chan struct{} {
	return t.done
}
