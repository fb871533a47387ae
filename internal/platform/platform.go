// Package platform hides the differences between the POSIX and Windows
// process and signal models behind one small interface.
package platform

import (
	"os"
	"os/exec"
	"os/signal"
	"sync"
)

// Platform is the capability set the runner and the interrupt bridge need
type Platform interface {
	// RegisterInterruptHandler calls fn for every interrupt delivered to the process
	// until the returned function is called.
	RegisterInterruptHandler(fn func()) (unregister func())

	// PrepareChild configures cmd so the child can be interrupted as a group.
	PrepareChild(cmd *exec.Cmd)

	// TrackChild binds a started child to its group. release must be called once
	// the child has been waited for.
	TrackChild(p *os.Process) (release func(), err error)

	// RequestChildTermination asks the child to stop the way an operator's Ctrl+C would.
	RequestChildTermination(p *os.Process) error

	// KillChild forcibly ends the child and anything left in its group.
	KillChild(p *os.Process) error
}

// Current returns the implementation for the running OS
func Current() Platform {
	return native{}
}

// notifyLoop forwards signals to fn on its own goroutine. The returned function
// stops delivery and waits for the goroutine to exit.
func notifyLoop(fn func(), sigs ...os.Signal) func() {
	ch := make(chan os.Signal, 1)
	stop := make(chan struct{})
	var wg sync.WaitGroup

	signal.Notify(ch, sigs...)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ch:
				fn()
			case <-stop:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(stop)
			wg.Wait()
		})
	}
}
