package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/tui/components"
	"github.com/theirongolddev/spendwatch/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	if s, ok := a.renderLoadState(cw); ok {
		return s
	}

	t := theme.Active
	r := a.ctl.Report()
	cur := a.opts.Currency
	var b strings.Builder

	// Row 1: headline figures
	avg := decimal.Zero
	if r.Count > 0 {
		avg = r.Total.Div(decimal.NewFromInt(int64(r.Count)))
	}
	trendColor := t.TextDim
	switch {
	case r.Trend > 0:
		trendColor = t.Up()
	case r.Trend < 0:
		trendColor = t.Down()
	}
	stats := []components.Stat{
		{Label: "Total Spent", Value: cli.FormatAmount(cur, r.Total), Sub: cli.FormatCount(r.Count)},
		{Label: "This Month", Value: cli.FormatAmount(cur, r.ThisMonthTotal), Sub: cli.FormatTrend(r.Trend), SubColor: trendColor},
		{Label: "Average", Value: cli.FormatAmount(cur, avg), Sub: "per transaction"},
		{Label: "Highest", Value: cli.FormatAmount(cur, r.Highest), Sub: "single expense"},
	}
	if a.isCompactLayout() {
		b.WriteString(components.StatCardRow(stats[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.StatCardRow(stats[2:], cw))
	} else {
		b.WriteString(components.StatCardRow(stats, cw))
	}
	b.WriteString("\n")

	// Row 2: categories + monthly trend
	var catCard, monthCard string
	if a.isCompactLayout() {
		catCard = a.renderCategoryCard(cw)
		monthCard = a.renderMonthlyCard(cw, 8)
		b.WriteString(catCard)
		b.WriteString("\n")
		b.WriteString(monthCard)
	} else {
		halves := components.LayoutRow(cw, 2)
		catCard = a.renderCategoryCard(halves[0])
		monthCard = a.renderMonthlyCard(halves[1], max(lipgloss.Height(catCard)-3, 8))
		b.WriteString(components.CardRow([]string{catCard, monthCard}))
	}
	b.WriteString("\n")

	return b.String()
}

func (a App) renderCategoryCard(w int) string {
	t := theme.Active
	r := a.ctl.Report()
	innerW := components.CardInnerWidth(w)

	if len(r.Categories) == 0 {
		return components.ContentCard("By Category",
			lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No data"), w)
	}

	labelW := 0
	for _, c := range r.Categories {
		info := c.Category.Info()
		labelW = max(labelW, lipgloss.Width(info.Glyph+" "+info.Label))
	}
	amounts := make([]string, len(r.Categories))
	amountW := 0
	for i, c := range r.Categories {
		amounts[i] = cli.FormatAmount(a.opts.Currency, c.Amount)
		amountW = max(amountW, lipgloss.Width(amounts[i]))
	}
	barW := innerW - labelW - amountW - 11
	if barW < 6 {
		barW = 6
	}

	lines := make([]string, len(r.Categories))
	for i, c := range r.Categories {
		info := c.Category.Info()
		color := t.CategoryColor(c.Category.Index())
		lines[i] = components.ShareBar(info.Glyph+" "+info.Label, color, c.SharePercent, amounts[i], labelW, barW)
	}
	return components.ContentCard(fmt.Sprintf("By Category (%d)", len(r.Categories)), strings.Join(lines, "\n"), w)
}

func (a App) renderMonthlyCard(w, h int) string {
	t := theme.Active
	r := a.ctl.Report()

	if len(r.Months) == 0 {
		return components.ContentCard("Monthly Trend",
			lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No data"), w)
	}
	vals := make([]float64, len(r.Months))
	labels := make([]string, len(r.Months))
	for i, m := range r.Months {
		vals[i] = m.Amount.InexactFloat64()
		labels[i] = m.Label
	}
	return components.ContentCard(
		fmt.Sprintf("Monthly Trend (last %d)", len(r.Months)),
		components.BarChart(vals, labels, t.Accent, components.CardInnerWidth(w), h),
		w,
	)
}

// renderLoadState covers the first load and fetch failures with nothing to
// show yet. ok is false once a list has arrived.
func (a App) renderLoadState(cw int) (string, bool) {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	switch {
	case a.ctl.Loaded():
		return "", false
	case a.ctl.Err() != "":
		body := errStyle.Render(a.ctl.Err()) + "\n\n" +
			muted.Render(fmt.Sprintf("Could not reach %s. Press r to retry.", a.opts.Host))
		return components.ContentCard("Expenses", body, cw), true
	default:
		return components.ContentCard("Expenses", a.spinner.View()+muted.Render(" Loading expenses..."), cw), true
	}
}
