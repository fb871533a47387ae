// Package menu implements the filterable selection menu: a state machine fed
// one event at a time, plus the bubbletea program that drives it.
package menu

import (
	"tfocus/internal/domain"
	"tfocus/internal/fuzzy"
	"tfocus/internal/interrupt"
)

// State of a menu session
type State int

const (
	Editing State = iota
	Confirmed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Key is a menu-level key, independent of the terminal library
type Key int

const (
	KeyRune Key = iota
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyLeft
	KeyRight
	KeyLineStart
	KeyLineEnd
	KeyClearQuery
	KeyToggle
	KeyConfirm
	KeyCancel
	KeyReset
)

// Event is one input to the menu loop
type Event interface {
	event()
}

// KeyEvent is a key press. Rune is set for KeyRune.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// TickEvent lets the loop observe the cancellation token without input
type TickEvent struct{}

// CancelEvent is delivered when the cancellation token is armed
type CancelEvent struct{}

func (KeyEvent) event()    {}
func (TickEvent) event()   {}
func (CancelEvent) event() {}

// Result is what a finished menu hands back
type Result struct {
	State       State
	Identifiers []string // chosen identifiers in selection order; empty unless Confirmed
}

// Options configures a menu
type Options struct {
	MultiSelect bool
	Token       *interrupt.Token // may be nil
}

// Menu is the selection state machine
type Menu struct {
	set    domain.CandidateSet
	opts   Options
	query  Query
	ranked []fuzzy.Match
	nav    *Navigator
	chosen *Selection
	state  State
	result []string
}

// New creates a menu in the Editing state with the full set ranked
func New(set domain.CandidateSet, opts Options) *Menu {
	m := &Menu{
		set:    set,
		opts:   opts,
		nav:    NewNavigator(),
		chosen: NewSelection(),
	}
	m.rerank()
	return m
}

// Handle applies one event and returns the resulting state. Events after the
// menu has finished are ignored.
func (m *Menu) Handle(ev Event) State {
	if m.state != Editing {
		return m.state
	}
	if m.opts.Token != nil && m.opts.Token.Armed() {
		m.cancel()
		return m.state
	}

	switch ev := ev.(type) {
	case CancelEvent:
		m.cancel()
	case KeyEvent:
		m.handleKey(ev)
	case TickEvent:
	}
	return m.state
}

func (m *Menu) handleKey(ev KeyEvent) {
	switch ev.Key {
	case KeyRune:
		m.query.Insert(ev.Rune)
		m.rerank()
	case KeyBackspace:
		if m.query.Backspace() {
			m.rerank()
		}
	case KeyDelete:
		if m.query.Delete() {
			m.rerank()
		}
	case KeyClearQuery:
		if m.query.Clear() {
			m.rerank()
		}
	case KeyLeft:
		m.query.Left()
	case KeyRight:
		m.query.Right()
	case KeyLineStart:
		m.query.Home()
	case KeyLineEnd:
		m.query.End()
	case KeyUp:
		m.nav.Navigate(DirectionUp)
	case KeyDown:
		m.nav.Navigate(DirectionDown)
	case KeyPageUp:
		m.nav.Navigate(DirectionPageUp)
	case KeyPageDown:
		m.nav.Navigate(DirectionPageDown)
	case KeyHome:
		m.nav.Navigate(DirectionHome)
	case KeyEnd:
		m.nav.Navigate(DirectionEnd)
	case KeyToggle:
		if m.opts.MultiSelect {
			if c, ok := m.Highlighted(); ok {
				m.chosen.Toggle(c.Identifier)
			}
		}
	case KeyConfirm:
		m.confirm()
	case KeyCancel:
		m.cancel()
	case KeyReset:
		m.Reset()
	}
}

func (m *Menu) confirm() {
	if len(m.ranked) == 0 {
		return
	}
	if m.chosen.Len() > 0 {
		m.result = m.chosen.IDs()
	} else {
		c, _ := m.Highlighted()
		m.result = []string{c.Identifier}
	}
	m.state = Confirmed
}

func (m *Menu) cancel() {
	m.result = nil
	m.state = Cancelled
}

// Reset empties the query and the chosen set and moves the highlight to the top
func (m *Menu) Reset() {
	if m.state != Editing {
		return
	}
	m.query.Clear()
	m.chosen.Clear()
	m.rerank()
}

func (m *Menu) rerank() {
	m.ranked = fuzzy.Rank(m.set, m.query.String())
	m.nav.SetCount(len(m.ranked))
}

// Result returns the exit contract. Identifiers are only set when Confirmed.
func (m *Menu) Result() Result {
	r := Result{State: m.state}
	if m.state == Confirmed {
		r.Identifiers = make([]string, len(m.result))
		copy(r.Identifiers, m.result)
	}
	return r
}

// State returns the current state
func (m *Menu) State() State { return m.state }

// Query returns the query buffer
func (m *Menu) Query() *Query { return &m.query }

// Ranked returns the current ranking. Callers must not modify it.
func (m *Menu) Ranked() []fuzzy.Match { return m.ranked }

// Navigator returns the highlight and viewport state
func (m *Menu) Navigator() *Navigator { return m.nav }

// Chosen returns the chosen identifiers in selection order
func (m *Menu) Chosen() []string { return m.chosen.IDs() }

// IsChosen reports whether id is in the chosen set
func (m *Menu) IsChosen(id string) bool { return m.chosen.Has(id) }

// MultiSelect reports whether toggling is enabled
func (m *Menu) MultiSelect() bool { return m.opts.MultiSelect }

// Total returns the size of the candidate set
func (m *Menu) Total() int { return len(m.set) }

// Highlighted returns the highlighted candidate, if any
func (m *Menu) Highlighted() (domain.Candidate, bool) {
	i := m.nav.Cursor()
	if i < 0 || i >= len(m.ranked) {
		return domain.Candidate{}, false
	}
	return m.ranked[i].Candidate, true
}
