// Package display prints the non-interactive lines around a session:
// discovered files, the command being run and its outcome.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions for plain output
type Styles struct {
	Header  lipgloss.Style
	Item    lipgloss.Style
	Command lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
}

// NewStyles creates a Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Item:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Command: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Dim:     lipgloss.NewStyle().Faint(true),
	}
}

// Printer writes styled lines to one stream
type Printer struct {
	w      io.Writer
	styles *Styles
}

// NewPrinter creates a printer on w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, styles: NewStyles()}
}

// Header prints a section title
func (p *Printer) Header(title string) {
	fmt.Fprintln(p.w, p.styles.Header.Render(title))
}

// List prints items indented under the previous header
func (p *Printer) List(items []string) {
	for _, it := range items {
		fmt.Fprintln(p.w, "  "+p.styles.Item.Render(it))
	}
}

// Command echoes the command about to run
func (p *Printer) Command(cmdline string) {
	fmt.Fprintln(p.w, p.styles.Dim.Render("Running: ")+p.styles.Command.Render(cmdline))
}

// Success prints a confirmation line
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, p.styles.Success.Render("✓ "+msg))
}

// Warning prints a non-fatal notice
func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.w, p.styles.Warning.Render("! "+msg))
}

// Error prints a failure
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, p.styles.Error.Render("✗ "+msg))
}

// ApplyHint prints the command that applies what a plan just showed
func (p *Printer) ApplyHint(cmdline string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.styles.Header.Render("To apply these changes, run:"))
	fmt.Fprintln(p.w, "  "+p.styles.Command.Render(cmdline))
}

// Blank prints an empty line
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// Section renders a header and its items as one block, for paging
func (s *Styles) Section(title string, items []string) string {
	var b strings.Builder
	b.WriteString(s.Header.Render(title))
	b.WriteString("\n")
	for _, it := range items {
		b.WriteString("  ")
		b.WriteString(s.Item.Render(it))
		b.WriteString("\n")
	}
	return b.String()
}
