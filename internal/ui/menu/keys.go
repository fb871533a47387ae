package menu

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the menu key bindings
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Left       key.Binding
	Right      key.Binding
	LineStart  key.Binding
	LineEnd    key.Binding
	ClearQuery key.Binding
	Backspace  key.Binding
	Delete     key.Binding
	Toggle     key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Reset      key.Binding
}

// DefaultKeyMap returns the standard bindings. Toggle is disabled for single-select menus.
func DefaultKeyMap(multiSelect bool) KeyMap {
	km := KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:        key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Left:       key.NewBinding(key.WithKeys("left", "ctrl+b")),
		Right:      key.NewBinding(key.WithKeys("right", "ctrl+f")),
		LineStart:  key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a/e", "line start/end")),
		LineEnd:    key.NewBinding(key.WithKeys("ctrl+e")),
		ClearQuery: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear query")),
		Backspace:  key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Delete:     key.NewBinding(key.WithKeys("delete", "ctrl+d")),
		Toggle:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
		Reset:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
	}
	km.Toggle.SetEnabled(multiSelect)
	return km
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Confirm, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.LineStart, k.ClearQuery, k.Reset},
		{k.Toggle, k.Confirm, k.Cancel},
	}
}

// Translate maps a terminal key message to menu events. A paste or a burst of
// runes becomes one event per rune, in order.
func (k KeyMap) Translate(msg tea.KeyMsg) []Event {
	bindings := []struct {
		binding key.Binding
		key     Key
	}{
		{k.Cancel, KeyCancel},
		{k.Confirm, KeyConfirm},
		{k.Toggle, KeyToggle},
		{k.Up, KeyUp},
		{k.Down, KeyDown},
		{k.PageUp, KeyPageUp},
		{k.PageDown, KeyPageDown},
		{k.Home, KeyHome},
		{k.End, KeyEnd},
		{k.Left, KeyLeft},
		{k.Right, KeyRight},
		{k.LineStart, KeyLineStart},
		{k.LineEnd, KeyLineEnd},
		{k.ClearQuery, KeyClearQuery},
		{k.Backspace, KeyBackspace},
		{k.Delete, KeyDelete},
		{k.Reset, KeyReset},
	}

	if msg.Type != tea.KeyRunes {
		for _, b := range bindings {
			if key.Matches(msg, b.binding) {
				return []Event{KeyEvent{Key: b.key}}
			}
		}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []Event{KeyEvent{Key: KeyRune, Rune: ' '}}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		events := make([]Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, KeyEvent{Key: KeyRune, Rune: r})
		}
		return events
	}
	return nil
}
