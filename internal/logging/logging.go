// Package logging builds the file logger. The terminal belongs to the menu and
// to the child process, so nothing is logged to stdout or stderr.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath returns $XDG_CACHE_HOME/tfocus/tfocus.log or the OS equivalent
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "tfocus", "tfocus.log")
}

// New returns a JSON logger appending to path. On any failure it returns a no-op
// logger and the error, so callers can carry on without logs.
func New(path string, verbose bool) (*zap.Logger, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop(), err
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Sampling = nil
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop(), err
	}
	return logger.With(zap.Int("pid", os.Getpid())), nil
}
