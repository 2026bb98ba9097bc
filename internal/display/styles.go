package display

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/agentstatus/internal/status"
	"github.com/grovetools/core/tui/theme"
)

// StatusStyle returns the colour used to render a status.
func StatusStyle(state status.State) lipgloss.Style {
	switch state {
	case status.StateActive:
		return lipgloss.NewStyle().Foreground(theme.DefaultColors.Green)
	case status.StateIdle:
		return lipgloss.NewStyle().Foreground(theme.DefaultColors.Yellow)
	case status.StateError:
		return lipgloss.NewStyle().Foreground(theme.DefaultColors.Red)
	default:
		return lipgloss.NewStyle().Foreground(theme.DefaultColors.MutedText)
	}
}

// FormatAge renders an epoch-ms timestamp relative to now, e.g. "3m ago".
// A nil timestamp renders as "-".
func FormatAge(now time.Time, ms *int64) string {
	if ms == nil {
		return "-"
	}
	age := now.Sub(time.UnixMilli(*ms))
	switch {
	case age < 0:
		return "just now"
	case age < time.Minute:
		return fmt.Sprintf("%ds ago", int(age/time.Second))
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age/time.Minute))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(age/(24*time.Hour)))
	}
}
