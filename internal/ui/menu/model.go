package menu

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"tfocus/internal/interrupt"
)

// chrome is the number of lines around the rows: title, query, blank, scroll
// markers, help
const chrome = 7

type tickMsg time.Time

type cancelMsg struct{}

// Model adapts a Menu to a bubbletea program
type Model struct {
	menu         *Menu
	keys         KeyMap
	help         help.Model
	renderer     *renderer
	token        *interrupt.Token
	pollInterval time.Duration
	stop         chan struct{}
	width        int
	height       int
}

// NewModel wraps menu for a bubbletea program
func NewModel(menu *Menu, opts RunOptions) *Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 100 * time.Millisecond
	}
	return &Model{
		menu:         menu,
		keys:         DefaultKeyMap(menu.MultiSelect()),
		help:         help.New(),
		renderer:     &renderer{styles: NewStyles(), title: opts.Title, showDetail: opts.ShowDetail},
		token:        menu.opts.Token,
		pollInterval: opts.PollInterval,
		stop:         make(chan struct{}),
	}
}

// Menu returns the wrapped state machine
func (m *Model) Menu() *Menu { return m.menu }

// Init starts the poll tick. The cancellation watcher runs outside the
// program, see watchCancel.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// watchCancel delivers a cancel notice through send when the token is armed.
// It returns once the model shuts down. Without a token it returns at once.
func (m *Model) watchCancel(send func(tea.Msg)) {
	if m.token == nil {
		return
	}
	select {
	case <-m.token.Done():
		send(cancelMsg{})
	case <-m.stop:
	}
}

// Update translates messages into menu events, one event per loop iteration
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.menu.Navigator().SetViewportHeight(msg.Height - chrome)
		return m, m.finishIfDone(m.menu.Handle(TickEvent{}))

	case tickMsg:
		state := m.menu.Handle(TickEvent{})
		if state != Editing {
			return m, m.finish()
		}
		return m, m.tick()

	case cancelMsg:
		return m, m.finishIfDone(m.menu.Handle(CancelEvent{}))

	case tea.KeyMsg:
		events := m.keys.Translate(msg)
		if len(events) == 0 {
			return m, m.finishIfDone(m.menu.Handle(TickEvent{}))
		}
		state := Editing
		for _, ev := range events {
			if state = m.menu.Handle(ev); state != Editing {
				break
			}
		}
		return m, m.finishIfDone(state)
	}
	return m, nil
}

func (m *Model) finishIfDone(state State) tea.Cmd {
	if state == Editing {
		return nil
	}
	return m.finish()
}

func (m *Model) finish() tea.Cmd {
	m.shutdown()
	return tea.Quit
}

// shutdown releases the cancellation watcher; safe to call more than once
func (m *Model) shutdown() {
	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
}

// View renders the menu. Nothing is drawn once it has finished so the
// terminal is left clean for the child's output.
func (m *Model) View() string {
	if m.menu.State() != Editing {
		return ""
	}
	return m.renderer.render(m.menu, m.width, m.help.View(m.keys))
}
