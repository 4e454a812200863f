package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/pipeline"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Spending per month (most recent months)",
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctl, err := loadView(cmd, rt)
	if err != nil {
		return err
	}
	r := ctl.Report()
	if len(r.Months) == 0 {
		fmt.Println("\n  No expenses match the current filters.")
		return nil
	}

	values := make([]float64, len(r.Months))
	maxVal := 0.0
	for i, m := range r.Months {
		values[i] = m.Amount.InexactFloat64()
		maxVal = max(maxVal, values[i])
	}

	rows := make([][]string, 0, len(r.Months))
	for i, m := range r.Months {
		rows = append(rows, []string{
			m.Month.Format("Jan 2006"),
			cli.FormatAmount(rt.currency(), m.Amount),
			fmt.Sprintf("%d", m.Count),
			cli.RenderHorizontalBar(values[i], maxVal, 24),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:      fmt.Sprintf("Monthly Spending (last %d)  %s", pipeline.MonthWindow, filterLabel(ctl)),
		Headers:    []string{"Month", "Amount", "Count", ""},
		Rows:       rows,
		RightAlign: []bool{false, true, true, false},
	}))
	fmt.Printf("\n  Trend  %s   %s\n", cli.RenderSparkline(values), cli.RenderTrend(r.Trend))
	return nil
}
