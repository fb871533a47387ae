//go:build windows

package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

type native struct{}

// jobs maps a tracked child's pid to the job object holding its tree
var jobs sync.Map

func (native) RegisterInterruptHandler(fn func()) func() {
	return notifyLoop(fn, os.Interrupt, syscall.SIGTERM)
}

// PrepareChild starts the child in a new console process group. Ctrl+C is not
// delivered to such a group, so termination goes through CTRL_BREAK_EVENT.
func (native) PrepareChild(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= windows.CREATE_NEW_PROCESS_GROUP
}

// TrackChild assigns the child to a job object so a forced kill also ends the
// provider plugins it started. Closing the job ends whatever is left in it.
func (native) TrackChild(p *os.Process) (func(), error) {
	if p == nil {
		return func() {}, nil
	}

	job, err := windows.CreateJobObject(nil, nil)
	if err != nil {
		return func() {}, fmt.Errorf("create job object: %w", err)
	}

	info := windows.JOBOBJECT_EXTENDED_LIMIT_INFORMATION{
		BasicLimitInformation: windows.JOBOBJECT_BASIC_LIMIT_INFORMATION{
			LimitFlags: windows.JOB_OBJECT_LIMIT_KILL_ON_JOB_CLOSE,
		},
	}
	if _, err := windows.SetInformationJobObject(
		job,
		windows.JobObjectExtendedLimitInformation,
		uintptr(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)),
	); err != nil {
		windows.CloseHandle(job)
		return func() {}, fmt.Errorf("configure job object: %w", err)
	}

	h, err := windows.OpenProcess(windows.PROCESS_SET_QUOTA|windows.PROCESS_TERMINATE, false, uint32(p.Pid))
	if err != nil {
		windows.CloseHandle(job)
		return func() {}, fmt.Errorf("open child process: %w", err)
	}
	defer windows.CloseHandle(h)

	if err := windows.AssignProcessToJobObject(job, h); err != nil {
		windows.CloseHandle(job)
		return func() {}, fmt.Errorf("assign child to job: %w", err)
	}

	jobs.Store(p.Pid, job)
	var once sync.Once
	return func() {
		once.Do(func() {
			jobs.Delete(p.Pid)
			windows.CloseHandle(job)
		})
	}, nil
}

func (native) RequestChildTermination(p *os.Process) error {
	if p == nil {
		return nil
	}
	return windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, uint32(p.Pid))
}

// KillChild ends the whole job when the child is tracked, then the child itself
func (native) KillChild(p *os.Process) error {
	if p == nil {
		return nil
	}
	if job, ok := jobs.Load(p.Pid); ok {
		_ = windows.TerminateJobObject(job.(windows.Handle), 1)
	}
	if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
