package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/export"
)

var flagOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered expenses to .xlsx or .csv",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "expenses.xlsx", "Output file (.xlsx or .csv)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctl, err := loadView(cmd, rt)
	if err != nil {
		return err
	}
	if err := export.ToFile(flagOutput, ctl.Filtered(), ctl.Report()); err != nil {
		return err
	}
	fmt.Printf("  %s\n", cli.RenderMessage(fmt.Sprintf("Wrote %s to %s", cli.FormatCount(len(ctl.Filtered())), flagOutput)))
	return nil
}
