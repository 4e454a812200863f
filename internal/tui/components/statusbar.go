package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwatch/internal/tui/theme"
)

// StatusInfo is the right-hand side of the status bar.
type StatusInfo struct {
	Route       string
	Host        string
	LastRefresh string // e.g. "12:04:31"
	Refreshing  bool
	AutoRefresh bool
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	left := " [?]help  [:]route  [q]uit"

	right := ""
	if info.Route != "" {
		right += accent.Render(info.Route) + dim.Render("  ")
	}
	if info.Host != "" {
		right += dim.Render(info.Host + "  ")
	}
	switch {
	case info.Refreshing:
		right += accent.Render("refreshing…")
	case info.LastRefresh != "":
		right += dim.Render("updated " + info.LastRefresh)
	}
	if info.AutoRefresh {
		right += accent.Render(" ⟳")
	}
	right += " "

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	gap := lipgloss.NewStyle().Background(t.Surface).Width(padding).Render("")

	return style.Render(left + gap + right)
}
