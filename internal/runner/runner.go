// Package runner launches the external action scoped to the selected
// resources and keeps it interruptible while it runs.
package runner

import (
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"tfocus/internal/domain"
	"tfocus/internal/interrupt"
	"tfocus/internal/platform"
)

// Options configures a Runner
type Options struct {
	Binary       string
	TargetFlag   string
	ExtraArgs    map[domain.Action][]string
	PollInterval time.Duration
	GracePeriod  time.Duration
	Stdout       io.Writer // nil discards
	Stderr       io.Writer
}

// Runner runs one child at a time
type Runner struct {
	opts     Options
	platform platform.Platform
	logger   *zap.Logger
}

// New creates a runner. A nil logger disables logging.
func New(opts Options, p platform.Platform, logger *zap.Logger) *Runner {
	if opts.TargetFlag == "" {
		opts.TargetFlag = "-target"
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 100 * time.Millisecond
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{opts: opts, platform: p, logger: logger}
}

// Args returns the child's argument list: the action, one scoping flag per
// target in selection order, then the action's extra args.
func (r *Runner) Args(req domain.RunRequest) []string {
	extra := r.opts.ExtraArgs[req.Action]
	args := make([]string, 0, 1+len(req.Targets)+len(extra))
	args = append(args, string(req.Action))
	for _, t := range req.Targets {
		args = append(args, r.opts.TargetFlag+"="+t)
	}
	return append(args, extra...)
}

// CommandLine renders the command for display. It is not shell-quoted.
func (r *Runner) CommandLine(req domain.RunRequest) string {
	return r.opts.Binary + " " + strings.Join(r.Args(req), " ")
}

// Run starts the child and waits for it, terminating it if token is armed.
func (r *Runner) Run(req domain.RunRequest, token *interrupt.Token) domain.Outcome {
	start := time.Now()
	log := r.logger.With(zap.String("action", string(req.Action)), zap.Strings("targets", req.Targets))

	if token.Armed() {
		log.Info("cancelled before spawn")
		return domain.Outcome{Kind: domain.TerminatedByCancellation}
	}

	path, err := exec.LookPath(r.opts.Binary)
	if err != nil {
		return r.spawnFailed(log, err, start)
	}
	// a relative path would otherwise resolve against req.Dir
	if path, err = filepath.Abs(path); err != nil {
		return r.spawnFailed(log, err, start)
	}

	cmd := exec.Command(path, r.Args(req)...)
	cmd.Dir = req.Dir
	cmd.Stdout = r.opts.Stdout
	cmd.Stderr = r.opts.Stderr
	r.platform.PrepareChild(cmd)

	log.Debug("starting child", zap.String("path", path), zap.Strings("args", cmd.Args[1:]), zap.String("dir", req.Dir))
	if err := cmd.Start(); err != nil {
		return r.spawnFailed(log, err, start)
	}
	release, err := r.platform.TrackChild(cmd.Process)
	if err != nil {
		log.Warn("child not tracked, a forced kill may leave descendants", zap.Error(err))
	}
	if release != nil {
		defer release()
	}

	waitCh := make(chan error, 1)
	go func() {
		waitCh <- cmd.Wait()
	}()

	// armed while the child was starting
	if token.Armed() {
		return r.terminate(log, cmd, waitCh, start)
	}

	ticker := time.NewTicker(r.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case err := <-waitCh:
			return r.completed(log, err, start)
		case <-token.Done():
			return r.terminate(log, cmd, waitCh, start)
		case <-ticker.C:
			if token.Armed() {
				return r.terminate(log, cmd, waitCh, start)
			}
		}
	}
}

func (r *Runner) completed(log *zap.Logger, err error, start time.Time) domain.Outcome {
	out := domain.Outcome{Kind: domain.Completed, Duration: time.Since(start)}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
		if out.ExitCode < 0 {
			// terminated by a signal we did not send
			out.ExitCode = 1
		}
	default:
		out.ExitCode = 1
		out.Err = err
	}

	log.Info("child exited", zap.Int("exit_code", out.ExitCode), zap.Duration("duration", out.Duration))
	return out
}

func (r *Runner) terminate(log *zap.Logger, cmd *exec.Cmd, waitCh <-chan error, start time.Time) domain.Outcome {
	out := domain.Outcome{Kind: domain.TerminatedByCancellation}

	log.Info("interrupt received, stopping child", zap.Int("pid", cmd.Process.Pid))
	if err := r.platform.RequestChildTermination(cmd.Process); err != nil {
		log.Warn("termination request failed", zap.Error(err))
	}

	grace := time.NewTimer(r.opts.GracePeriod)
	defer grace.Stop()

	select {
	case <-waitCh:
	case <-grace.C:
		log.Warn("child ignored interrupt, killing", zap.Duration("grace_period", r.opts.GracePeriod))
		if err := r.platform.KillChild(cmd.Process); err != nil {
			log.Error("kill failed", zap.Error(err))
		}
		<-waitCh
		out.Forced = true
	}

	out.Duration = time.Since(start)
	log.Info("child terminated", zap.Bool("forced", out.Forced), zap.Duration("duration", out.Duration))
	return out
}

func (r *Runner) spawnFailed(log *zap.Logger, err error, start time.Time) domain.Outcome {
	spawnErr := &domain.SpawnError{Binary: r.opts.Binary, Err: err}
	log.Error("spawn failed", zap.Error(spawnErr))
	return domain.Outcome{Kind: domain.SpawnFailed, Err: spawnErr, Duration: time.Since(start)}
}
