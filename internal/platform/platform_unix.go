//go:build !windows

package platform

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

type native struct{}

func (native) RegisterInterruptHandler(fn func()) func() {
	return notifyLoop(fn, unix.SIGINT, unix.SIGTERM)
}

// PrepareChild puts the child in its own process group so the whole tree can be signalled
func (native) PrepareChild(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// TrackChild is a no-op: the process group set up by PrepareChild already holds the tree
func (native) TrackChild(*os.Process) (func(), error) {
	return func() {}, nil
}

func (native) RequestChildTermination(p *os.Process) error {
	if p == nil {
		return nil
	}
	err := unix.Kill(-p.Pid, unix.SIGINT)
	if errors.Is(err, unix.ESRCH) {
		// group already gone, fall back to the leader
		err = p.Signal(os.Interrupt)
	}
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

func (native) KillChild(p *os.Process) error {
	if p == nil {
		return nil
	}
	// the child leads its own group, so its pid is the group id
	_ = unix.Kill(-p.Pid, unix.SIGKILL)
	if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
