package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are rebuilt from CurrentTheme on every render so theme switches
// apply immediately.

func canvasStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Canvas).Padding(1, 2)
}

func statsStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(CurrentTheme.Muted).
		Padding(1, 2).
		Width(44)
}

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true).MarginBottom(1)
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Width(12)
}

func valueStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(CurrentTheme.Text) }

func selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true)
}

func graphStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Padding(1, 0)
}

func helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Italic(true).MarginTop(1)
}

func statusStyle(running bool, failed bool) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch {
	case failed:
		return s.Foreground(CurrentTheme.Error)
	case running:
		return s.Foreground(CurrentTheme.Success)
	default:
		return s.Foreground(CurrentTheme.Warning)
	}
}

// ProgressBar renders a bar filled to percent in [0, 1].
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render(bar)
}
