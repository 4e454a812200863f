package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/model"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Spending broken down by category",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
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
	if len(r.Categories) == 0 {
		fmt.Println("\n  No expenses match the current filters.")
		return nil
	}

	fmt.Println()
	printCategories(r.Categories, rt.currency(), "Spending by Category  "+filterLabel(ctl))
	fmt.Printf("\n  %s across %s\n", cli.RenderValue(cli.FormatAmount(rt.currency(), r.Total)), cli.FormatCount(r.Count))
	return nil
}

func printCategories(cats []model.CategoryStats, currency, title string) {
	maxShare := 0.0
	for _, c := range cats {
		maxShare = max(maxShare, c.SharePercent)
	}

	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{
			cli.RenderCategory(c.Category),
			cli.FormatAmount(currency, c.Amount),
			fmt.Sprintf("%d", c.Count),
			cli.FormatShare(c.SharePercent),
			cli.RenderHorizontalBar(c.SharePercent, maxShare, 20),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:      title,
		Headers:    []string{"Category", "Amount", "Count", "Share", ""},
		Rows:       rows,
		RightAlign: []bool{false, true, true, true, false},
	}))
}
