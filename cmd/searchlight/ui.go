package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles for human-facing command output. Plain text when stdout is not
// a terminal so piped output stays machine-friendly.
var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// styled applies style to s only when stdout is a terminal.
func styled(style lipgloss.Style, s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return s
	}
	return style.Render(s)
}
