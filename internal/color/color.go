package color

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// PassStyle marks pairs that received every message.
	PassStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#007A3D", Dark: "#3FD97F"})
	// PartialStyle marks pairs that received some messages.
	PartialStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#F2C94C"})
	// FailStyle marks pairs that received nothing.
	FailStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#B00020", Dark: "#FF6B6B"})
	// MutedStyle is used for secondary details like durations.
	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6E6E6E", Dark: "#9E9E9E"})
)

// Initialize forces the dark or light variant of the adaptive colors.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// SetTheme applies a --theme value: "auto" keeps the detected background,
// "dark" and "light" force it.
func SetTheme(theme string) error {
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case "", "auto":
		return nil
	case "dark":
		Initialize(true)
	case "light":
		Initialize(false)
	default:
		return fmt.Errorf("unknown theme %q, must be 'auto', 'dark' or 'light'", theme)
	}
	return nil
}

// Status renders a PASS, PARTIAL or FAIL status word.
func Status(status string) string {
	switch status {
	case "PASS":
		return PassStyle.Render(status)
	case "PARTIAL":
		return PartialStyle.Render(status)
	default:
		return FailStyle.Render(status)
	}
}
