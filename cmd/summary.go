package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/view"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals, this month's trend and the top categories",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctl, err := loadView(cmd, rt)
	if err != nil {
		return err
	}

	if len(ctl.Expenses()) == 0 {
		fmt.Println("\n  No expenses recorded yet.")
		fmt.Println("  Add one with `spendwatch add`.")
		return nil
	}
	if len(ctl.Filtered()) == 0 {
		fmt.Println("\n  No expenses match the current filters.")
		return nil
	}

	printSummary(ctl, rt.currency())
	return nil
}

func printSummary(ctl view.Controller, currency string) {
	r := ctl.Report()

	fmt.Println()
	fmt.Println(cli.RenderTitle("EXPENSES  " + filterLabel(ctl)))
	fmt.Println()

	avg := decimal.Zero
	if r.Count > 0 {
		avg = r.Total.Div(decimal.NewFromInt(int64(r.Count)))
	}

	rows := [][]string{
		{"Total Spent", cli.FormatAmount(currency, r.Total)},
		{"Transactions", fmt.Sprintf("%d", r.Count)},
		{"Average", cli.FormatAmount(currency, avg)},
		{"Highest", cli.FormatAmount(currency, r.Highest)},
		{"---"},
		{"This Month", cli.FormatAmount(currency, r.ThisMonthTotal) + "  " + cli.RenderMuted(cli.FormatCount(r.ThisMonthCount))},
		{"Last Month", cli.FormatAmount(currency, r.LastMonthTotal)},
		{"Trend", cli.RenderTrend(r.Trend)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Metric", "Value"},
		Rows:       rows,
		RightAlign: []bool{false, true},
	}))

	// Top categories
	limit := min(len(r.Categories), 5)
	if limit > 0 {
		fmt.Println()
		printCategories(r.Categories[:limit], currency, "Top Categories")
	}
}

// filterLabel describes the active filters for titles.
func filterLabel(ctl view.Controller) string {
	label := ctl.Category()
	if ctl.Search() != "" {
		label += fmt.Sprintf(" matching %q", ctl.Search())
	}
	return label
}
