package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwatch/internal/api"
	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/tui/components"
	"github.com/theirongolddev/spendwatch/internal/tui/theme"
)

var activityOps = []string{api.OpList, api.OpGet, api.OpCreate, api.OpUpdate, api.OpDelete}

func (a App) renderActivityTab(cw, h int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	switch {
	case a.opts.Activity == nil:
		return components.ContentCard("Activity", muted.Render("The request journal is disabled."), cw)
	case a.activityErr != nil:
		return components.ContentCard("Activity",
			lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render("Could not read journal: "+a.activityErr.Error()), cw)
	case len(a.activity) == 0:
		return components.ContentCard("Activity", muted.Render("No requests recorded yet."), cw)
	}

	// Calls per operation, failures in red
	counts := make(map[string][2]int) // ok, failed
	for _, e := range a.activity {
		c := counts[e.Op]
		if e.Success {
			c[0]++
		} else {
			c[1]++
		}
		counts[e.Op] = c
	}
	var bars []components.Bar
	for _, op := range activityOps {
		c := counts[op]
		if c[0]+c[1] == 0 {
			continue
		}
		color := t.Green
		if c[1] > 0 {
			color = t.Orange
		}
		bars = append(bars, components.Bar{
			Label: op,
			Value: float64(c[0] + c[1]),
			Text:  fmt.Sprintf("%d ok / %d failed", c[0], c[1]),
			Color: color,
		})
	}
	opsCard := components.ContentCard("Requests by Operation", components.HBars(bars, components.CardInnerWidth(cw)), cw)

	listH := h - lipgloss.Height(opsCard) - 1
	return opsCard + "\n" + a.renderActivityList(cw, listH)
}

func (a App) renderActivityList(cw, h int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	okStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	failStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	const timeW, opW, statusW, idW = 19, 7, 6, 26
	msgW := max(innerW-timeW-opW-statusW-idW-6, 10)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %-*s %-*s %-*s   %s",
		timeW, "Time", opW, "Op", statusW, "Status", idW, "Expense", "Message")))
	b.WriteString("\n")

	visible := max(h-3, 3)
	for i, e := range a.activity {
		if i >= visible {
			break
		}
		mark := okStyle.Render("✓")
		if !e.Success {
			mark = failStyle.Render("✗")
		}
		status := "-"
		if e.Status > 0 {
			status = fmt.Sprintf("%d", e.Status)
		}
		id := e.ExpenseID
		if id == "" {
			id = "-"
		}
		line := padCell(e.At.Local().Format("2006-01-02 15:04:05"), timeW) + " " +
			padCell(e.Op, opW) + " " +
			padCell(status, statusW) + " " +
			padCell(cli.Truncate(id, idW), idW) + " "
		b.WriteString(rowStyle.Render(line))
		b.WriteString(mark)
		b.WriteString(rowStyle.Render(" " + cli.Truncate(e.Message, msgW)))
		b.WriteString("\n")
	}

	return components.ContentCard(fmt.Sprintf("Recent Requests (%d)", len(a.activity)), strings.TrimSuffix(b.String(), "\n"), cw)
}
