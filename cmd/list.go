package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/model"
	"github.com/theirongolddev/spendwatch/internal/view"
)

var flagListLimit int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List expenses matching the filters",
	RunE:    runList,
}

func init() {
	listCmd.Flags().IntVarP(&flagListLimit, "limit", "n", 0, "Show at most N rows (0 = all)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctl, err := loadView(cmd, rt)
	if err != nil {
		return err
	}
	printList(ctl, rt.currency(), flagListLimit)
	return nil
}

// printList renders the filtered expenses with a total row.
func printList(ctl view.Controller, currency string, limit int) {
	rows := ctl.Filtered()
	if len(rows) == 0 {
		if len(ctl.Expenses()) == 0 {
			fmt.Println("\n  No expenses recorded yet.")
		} else {
			fmt.Println("\n  No expenses match the current filters.")
		}
		return
	}

	shown := rows
	if limit > 0 && limit < len(rows) {
		shown = rows[:limit]
	}

	out := make([][]string, 0, len(shown)+2)
	for _, e := range shown {
		out = append(out, expenseRow(e, currency))
	}
	r := ctl.Report()
	out = append(out, []string{"---"})
	out = append(out, []string{"", "Total", "", cli.FormatAmount(currency, r.Total), cli.FormatCount(r.Count)})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:      fmt.Sprintf("Expenses  %s", filterLabel(ctl)),
		Headers:    []string{"Date", "Title", "Category", "Amount", "ID"},
		Rows:       out,
		RightAlign: []bool{false, false, false, true, false},
	}))
	if len(shown) < len(rows) {
		fmt.Println(cli.RenderMuted(fmt.Sprintf("  showing %d of %d", len(shown), len(rows))))
	}
}

func expenseRow(e model.Expense, currency string) []string {
	return []string{
		cli.FormatDate(e.CreatedAt),
		cli.Truncate(e.Title, 40),
		cli.RenderCategory(e.Category),
		cli.FormatAmount(currency, e.Amount),
		cli.RenderMuted(e.ID),
	}
}
