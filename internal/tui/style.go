package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	KeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

func Key(text string) string {
	return KeyStyle.Render(text)
}

func Label(text string) string {
	return LabelStyle.Render(text)
}

func Warning(text string) string {
	return WarningStyle.Render(text)
}

func Muted(text string) string {
	return MutedStyle.Render(text)
}

// Mask hides a value while leaving a recognizable tail, so a user can tell
// two secrets apart without seeing either.
func Mask(value string) string {
	n := len(value)
	switch {
	case n == 0:
		return ""
	case n <= 4:
		return strings.Repeat("*", n)
	case n <= 8:
		return strings.Repeat("*", n-2) + value[n-2:]
	default:
		return strings.Repeat("*", n-4) + value[n-4:]
	}
}
