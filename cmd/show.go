package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwatch/internal/api"
	"github.com/theirongolddev/spendwatch/internal/cli"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := requestContext(cmd)
	defer cancel()

	e, err := rt.client.Get(ctx, args[0])
	if err != nil {
		notify(api.Message(err, msgLoadFailed))
		return fmt.Errorf("loading expense %s: %w", args[0], err)
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{"ID", e.ID},
			{"Title", e.Title},
			{"Amount", cli.FormatAmount(rt.currency(), e.Amount)},
			{"Category", cli.RenderCategory(e.Category)},
			{"Created", cli.FormatDate(e.CreatedAt)},
		},
	}))
	return nil
}
