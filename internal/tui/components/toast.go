package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwatch/internal/tui/theme"
)

// ToastKind selects the toast colour.
type ToastKind int

// Toast kinds.
const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

// RenderToast renders a one-line notification banner of the given width.
func RenderToast(kind ToastKind, msg string, width int) string {
	t := theme.Active

	fg, icon := t.Accent, "i"
	switch kind {
	case ToastSuccess:
		fg, icon = t.Green, "✓"
	case ToastError:
		fg, icon = t.Red, "!"
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Background(t.SurfaceBright).
		Bold(true).
		Width(width).
		Padding(0, 1).
		Render(icon + " " + msg)
}
