package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/config"
	"github.com/theirongolddev/spendwatch/internal/store"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent requests from the activity journal",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of entries to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all journal entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	j, err := store.Open(config.JournalPath())
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer j.Close()

	if flagHistoryClear {
		if err := j.Clear(); err != nil {
			return err
		}
		fmt.Println("  " + cli.RenderMessage("Journal cleared"))
		return nil
	}

	entries, err := j.Recent(flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("\n  No requests recorded yet.")
		return nil
	}
	total, err := j.Count()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		result := cli.RenderMessage("ok")
		if !e.Success {
			result = cli.RenderNotice("failed")
		}
		status := "-"
		if e.Status > 0 {
			status = fmt.Sprintf("%d", e.Status)
		}
		rows = append(rows, []string{
			e.At.Local().Format("2006-01-02 15:04:05"),
			e.Op,
			orDefault(e.ExpenseID, "-"),
			status,
			result,
			cli.Truncate(e.Message, 40),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Activity  %d of %d", len(entries), total),
		Headers: []string{"Time", "Op", "Expense", "Status", "Result", "Message"},
		Rows:    rows,
	}))
	return nil
}
