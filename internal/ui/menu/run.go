package menu

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tfocus/internal/domain"
)

// RunOptions configures the interactive program
type RunOptions struct {
	Options
	Title        string
	ShowDetail   bool
	AltScreen    bool
	PollInterval time.Duration
	Input        io.Reader // nil means the terminal
	Output       io.Writer
}

// Run drives a menu over set until it is confirmed or cancelled. Cancellation is a
// normal result, not an error; a *domain.RenderError means the terminal failed.
func Run(set domain.CandidateSet, opts RunOptions) (Result, error) {
	menu := New(set, opts.Options)
	model := NewModel(menu, opts)

	// interrupts belong to the signal bridge, not to bubbletea
	programOpts := []tea.ProgramOption{tea.WithoutSignalHandler()}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	p := tea.NewProgram(model, programOpts...)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		model.watchCancel(p.Send)
	}()
	defer func() {
		model.shutdown()
		wg.Wait()
	}()

	if _, err := p.Run(); err != nil {
		return Result{State: Cancelled}, &domain.RenderError{Err: err}
	}
	return menu.Result(), nil
}
