package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/model"
	"github.com/theirongolddev/spendwatch/internal/tui/components"
	"github.com/theirongolddev/spendwatch/internal/tui/theme"
)

// Tab indices, matching components.Tabs.
const (
	tabOverview = iota
	tabExpenses
	tabActivity
)

// updateExpensesKey handles list navigation and row actions. handled is
// false for keys the tab does not own.
func (a App) updateExpensesKey(key string) (App, tea.Cmd, bool) {
	rows := a.ctl.Filtered()
	switch key {
	case "j", "down":
		if a.cursor < len(rows)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		a.cursor = max(len(rows)-1, 0)
	case "pgdown", "ctrl+d":
		a.cursor = min(a.cursor+10, max(len(rows)-1, 0))
	case "pgup", "ctrl+u":
		a.cursor = max(a.cursor-10, 0)
	case "enter":
		e, ok := a.selected()
		if !ok {
			return a, nil, true
		}
		next, cmd := a.navigate(EditRoute(e.ID))
		return next, cmd, true
	case "d", "delete":
		e, ok := a.selected()
		if !ok {
			return a, nil, true
		}
		next, cmd := a.openDeleteDialog(e)
		return next, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

// selected returns the expense under the cursor.
func (a App) selected() (model.Expense, bool) {
	rows := a.ctl.Filtered()
	if a.cursor < 0 || a.cursor >= len(rows) {
		return model.Expense{}, false
	}
	return rows[a.cursor], true
}

func (a App) renderExpensesTab(cw, h int) string {
	if s, ok := a.renderLoadState(cw); ok {
		return s
	}
	t := theme.Active
	rows := a.ctl.Filtered()

	if len(rows) == 0 {
		msg := "No expenses yet. Press n to add one."
		if len(a.ctl.Expenses()) > 0 {
			msg = "No expenses match your filters. Press x to clear them."
		}
		return components.ContentCard("Expenses",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(msg), cw)
	}

	if a.isCompactLayout() {
		return a.renderExpenseList(rows, cw, h)
	}
	leftW := cw * 3 / 5
	rightW := cw - leftW
	list := a.renderExpenseList(rows, leftW, h)
	detail := a.renderExpenseDetail(rows[min(a.cursor, len(rows)-1)], rightW)
	return components.CardRow([]string{list, detail})
}

func (a App) renderExpenseList(rows []model.Expense, w, h int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	const dateW, catW, amtW = 11, 15, 14
	titleW := innerW - dateW - catW - amtW - 3
	if titleW < 10 {
		titleW = 10
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %-*s %-*s %*s",
		dateW, "Date", titleW, "Title", catW, "Category", amtW, "Amount")))
	body.WriteString("\n")

	visible := h - 5 // border (2) + header (1) + footer (2)
	if visible < 3 {
		visible = 3
	}
	offset := 0
	if a.cursor >= visible {
		offset = a.cursor - visible + 1
	}
	end := min(offset+visible, len(rows))

	for i := offset; i < end; i++ {
		e := rows[i]
		info := e.Category.Info()
		line := padCell(cli.FormatDate(e.CreatedAt), dateW) + " " +
			padCell(cli.Truncate(e.Title, titleW), titleW) + " " +
			padCell(cli.Truncate(info.Glyph+" "+info.Label, catW), catW) + " " +
			padCellLeft(cli.FormatAmount(a.opts.Currency, e.Amount), amtW)
		if i == a.cursor {
			body.WriteString(selStyle.Render(line))
		} else {
			body.WriteString(rowStyle.Render(line))
		}
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(fmt.Sprintf("%d/%d  j/k move  enter edit  d delete  n add", a.cursor+1, len(rows))))

	return components.ContentCard(fmt.Sprintf("Expenses (%s)", cli.FormatCount(len(rows))), body.String(), w)
}

func (a App) renderExpenseDetail(e model.Expense, w int) string {
	t := theme.Active
	info := e.Category.Info()

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amount := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	cat := lipgloss.NewStyle().Foreground(t.CategoryColor(e.Category.Index())).Background(t.Surface)

	innerW := components.CardInnerWidth(w)
	row := func(k, v string) string {
		return label.Render(fmt.Sprintf("%-10s", k)) + v
	}

	lines := []string{
		amount.Render(cli.FormatAmount(a.opts.Currency, e.Amount)),
		"",
		row("Title", value.Render(cli.Truncate(e.Title, innerW-10))),
		row("Category", cat.Render(info.Glyph+" "+info.Label)),
		row("Date", value.Render(cli.FormatDate(e.CreatedAt))),
		row("ID", label.Render(cli.Truncate(e.ID, innerW-10))),
	}

	// Share of the filtered total
	r := a.ctl.Report()
	if r.Total.IsPositive() {
		pct := e.Amount.Div(r.Total).InexactFloat64() * 100
		lines = append(lines, "", label.Render("Share of total"),
			components.ProgressBar(pct/100, max(innerW-6, 10)))
	}
	return components.ContentCard("Details", strings.Join(lines, "\n"), w)
}

func padCell(s string, w int) string {
	if pad := w - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func padCellLeft(s string, w int) string {
	if pad := w - lipgloss.Width(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}
