package interrupt

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"tfocus/internal/platform"
)

// ErrAlreadyInstalled is returned by Install after the first successful call
var ErrAlreadyInstalled = errors.New("interrupt handler already installed")

var (
	installMu sync.Mutex
	installed bool
)

// Bridge connects the process interrupt signal to a Token
type Bridge struct {
	token      *Token
	unregister func()
	logger     *zap.Logger
}

// Install registers the process-wide interrupt handler. Only one Bridge may exist
// per process lifetime, even after Close.
func Install(token *Token, p platform.Platform, logger *zap.Logger) (*Bridge, error) {
	installMu.Lock()
	defer installMu.Unlock()
	if installed {
		return nil, ErrAlreadyInstalled
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &Bridge{token: token, logger: logger}
	// the handler runs on the signal goroutine and must only touch the token
	b.unregister = p.RegisterInterruptHandler(func() {
		token.Arm()
	})
	installed = true
	logger.Debug("interrupt handler installed")
	return b, nil
}

// Token returns the token armed by this bridge
func (b *Bridge) Token() *Token {
	return b.token
}

// Close stops delivering interrupts to the token
func (b *Bridge) Close() {
	if b.unregister != nil {
		b.unregister()
		b.unregister = nil
		b.logger.Debug("interrupt handler removed", zap.Bool("armed", b.token.Armed()))
	}
}
