package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Width(20)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F"))
)

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, headingStyle.Render(title))
}

func row(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "  %s %v\n", keyStyle.Render(key), value)
}
