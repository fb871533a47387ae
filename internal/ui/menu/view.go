package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderer draws a menu; it holds no menu state of its own
type renderer struct {
	styles     *Styles
	title      string
	showDetail bool
}

func (r *renderer) render(m *Menu, width int, helpView string) string {
	var b strings.Builder

	if r.title != "" {
		b.WriteString(r.styles.Title.Render(r.title))
		b.WriteString("\n")
	}

	b.WriteString(r.renderQuery(m))
	b.WriteString("  ")
	b.WriteString(r.styles.Counter.Render(r.counter(m)))
	b.WriteString("\n\n")

	b.WriteString(r.renderRows(m, width))

	if helpView != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Help.Render(helpView))
	}
	return b.String()
}

func (r *renderer) counter(m *Menu) string {
	s := fmt.Sprintf("%d/%d", len(m.Ranked()), m.Total())
	if n := len(m.Chosen()); n > 0 {
		s += fmt.Sprintf(" (%d selected)", n)
	}
	return s
}

func (r *renderer) renderQuery(m *Menu) string {
	q := m.Query()
	runes := []rune(q.String())
	cur := q.Cursor()

	var b strings.Builder
	b.WriteString(r.styles.Prompt.Render("> "))
	b.WriteString(string(runes[:cur]))
	if cur < len(runes) {
		b.WriteString(r.styles.Cursor.Render(string(runes[cur])))
		b.WriteString(string(runes[cur+1:]))
	} else {
		b.WriteString(r.styles.Cursor.Render(" "))
	}
	return b.String()
}

func (r *renderer) renderRows(m *Menu, width int) string {
	ranked := m.Ranked()
	if len(ranked) == 0 {
		return r.styles.Empty.Render("  no matches") + "\n"
	}

	nav := m.Navigator()
	start := nav.ViewportOffset()
	end := start + nav.ViewportHeight()
	if end > len(ranked) {
		end = len(ranked)
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("  ↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		match := ranked[i]
		highlighted := i == nav.Cursor()

		base := r.styles.Row
		if highlighted {
			base = r.styles.Selected
		}

		var parts []string
		if highlighted {
			parts = append(parts, r.styles.Pointer.Inherit(base).Render("▌"))
		} else {
			parts = append(parts, base.Render(" "))
		}
		if m.MultiSelect() {
			marker := "[ ]"
			if m.IsChosen(match.Candidate.Identifier) {
				marker = r.styles.Marker.Inherit(base).Render("[x]")
			} else {
				marker = base.Render(marker)
			}
			parts = append(parts, marker, base.Render(" "))
		}
		parts = append(parts, highlightPositions(match.Candidate.Label, match.Positions, r.styles.Highlight.Inherit(base), base))
		if r.showDetail && match.Candidate.Detail != "" {
			parts = append(parts, base.Render("  "), r.styles.Detail.Inherit(base).Render(match.Candidate.Detail))
		}

		line := strings.Join(parts, "")
		if width > 0 {
			line = lipgloss.NewStyle().MaxWidth(width).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if end < len(ranked) {
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("  ↓ %d more", len(ranked)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

// highlightPositions renders label with the runes at positions in hi and the rest in base
func highlightPositions(label string, positions []int, hi, base lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(label)
	}
	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}

	var b strings.Builder
	var run []rune
	runHi := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runHi {
			b.WriteString(hi.Render(string(run)))
		} else {
			b.WriteString(base.Render(string(run)))
		}
		run = run[:0]
	}
	for i, r := range []rune(label) {
		if marked[i] != runHi {
			flush()
			runHi = marked[i]
		}
		run = append(run, r)
	}
	flush()
	return b.String()
}
