package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("42")
	colorInfo    = lipgloss.Color("39")
	colorWarning = lipgloss.Color("220")
	colorError   = lipgloss.Color("196")

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorInfo)

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	skippedStyle = lipgloss.NewStyle().
			Foreground(colorError)
)

func printStyled(w io.Writer, style lipgloss.Style, format string, args ...interface{}) {
	fmt.Fprintln(w, style.Render(fmt.Sprintf(format, args...)))
}
