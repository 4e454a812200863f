package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/tui/theme"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx]) //nolint:gosec // bounds checked above
	}

	return style.Render(buf.String())
}

// BarChart renders one column per value, each topped with its shortened
// value and labelled underneath. It suits short series such as the monthly
// totals; narrow areas fall back to a sparkline.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	n := len(values)
	if n == 0 {
		return ""
	}
	if width < 3*n || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}

	colW := min((width+1)/n-1, 8)
	rows := height - 2 // value row above, label row below
	eighths := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	// heights in eighths of a row
	units := make([]int, n)
	for i, v := range values {
		if peak > 0 && v > 0 {
			units[i] = max(1, int(math.Round(v/peak*float64(rows*8))))
		}
	}

	bg := lipgloss.NewStyle().Background(t.Surface)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	bar := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	latest := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)

	cell := func(s string) string {
		s = cli.Truncate(s, colW)
		pad := colW - lipgloss.Width(s)
		return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
	}
	join := func(parts []string, style func(i int) lipgloss.Style) string {
		var b strings.Builder
		for i, p := range parts {
			if i > 0 {
				b.WriteString(bg.Render(" "))
			}
			b.WriteString(style(i).Render(p))
		}
		return b.String()
	}
	plain := func(int) lipgloss.Style { return dim }
	column := func(i int) lipgloss.Style {
		if i == n-1 {
			return latest
		}
		return bar
	}

	lines := make([]string, 0, height)

	tops := make([]string, n)
	for i, v := range values {
		tops[i] = cell(formatChartLabel(v))
	}
	lines = append(lines, join(tops, plain))

	for row := rows; row >= 1; row-- {
		parts := make([]string, n)
		for i, u := range units {
			fill := u - (row-1)*8
			switch {
			case fill >= 8:
				parts[i] = strings.Repeat("█", colW)
			case fill > 0:
				parts[i] = strings.Repeat(string(eighths[fill-1]), colW)
			default:
				parts[i] = strings.Repeat(" ", colW)
			}
		}
		lines = append(lines, join(parts, column))
	}

	names := make([]string, n)
	for i := range names {
		lbl := ""
		if i < len(labels) {
			lbl = labels[i]
		}
		names[i] = cell(lbl)
	}
	lines = append(lines, join(names, plain))

	return strings.Join(lines, "\n")
}

// formatChartLabel shortens an axis value using Indian units:
// thousand (k), lakh (L) and crore (Cr).
func formatChartLabel(v float64) string {
	unit := func(div float64, suffix string) string {
		if v == math.Trunc(v/div)*div {
			return fmt.Sprintf("%.0f%s", v/div, suffix)
		}
		return fmt.Sprintf("%.1f%s", v/div, suffix)
	}
	switch {
	case v >= 1e7:
		return unit(1e7, "Cr")
	case v >= 1e5:
		return unit(1e5, "L")
	case v >= 1e3:
		return unit(1e3, "k")
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	case v == 0:
		return "0"
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// Bar is one labelled row in an HBars chart.
type Bar struct {
	Label string
	Value float64
	Text  string // right-hand annotation, e.g. the formatted amount
	Color lipgloss.Color
}

// HBars renders one horizontal bar per entry scaled to the largest value.
// A zero maximum renders labels with empty bars.
func HBars(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW, textW := 0, 0
	maxVal := 0.0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		textW = max(textW, lipgloss.Width(b.Text))
		maxVal = max(maxVal, b.Value)
	}
	barW := width - labelW - textW - 2
	if barW < 4 {
		barW = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, len(bars))
	for i, b := range bars {
		n := 0
		if maxVal > 0 {
			n = int(math.Round(b.Value / maxVal * float64(barW)))
		}
		n = min(max(n, 0), barW)
		color := b.Color
		if color == "" {
			color = t.Accent
		}
		barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

		lines[i] = labelStyle.Render(b.Label+strings.Repeat(" ", labelW-lipgloss.Width(b.Label))) +
			space.Render(" ") +
			barStyle.Render(strings.Repeat("█", n)) +
			space.Render(strings.Repeat(" ", barW-n)) +
			space.Render(" ") +
			textStyle.Render(strings.Repeat(" ", textW-lipgloss.Width(b.Text))+b.Text)
	}
	return strings.Join(lines, "\n")
}
