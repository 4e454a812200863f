package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwatch/internal/api"
	"github.com/theirongolddev/spendwatch/internal/cli"
)

var addFields expenseFields

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an expense",
	Long: "Add an expense. Fields not given as flags are asked for in a form " +
		"when running in a terminal.",
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addExpenseFlags(addCmd, &addFields)
	rootCmd.AddCommand(addCmd)
}

func addExpenseFlags(cmd *cobra.Command, f *expenseFields) {
	cmd.Flags().StringVar(&f.Title, "title", "", "Expense title (3-50 characters)")
	cmd.Flags().StringVar(&f.Amount, "amount", "", "Amount, e.g. 250.50")
	cmd.Flags().StringVar(&f.Category, "category", "", "One of Food, Transport, Entertainment, Utilities, Healthcare, Shopping, Education, Other")
}

func runAdd(cmd *cobra.Command, _ []string) error {
	fields := addFields
	if !fields.complete() {
		if !interactive() {
			return errNotInteractive
		}
		if err := runExpenseForm("Add Expense", &fields); err != nil {
			return err
		}
	}

	in, err := fields.input()
	if err != nil {
		notify("Please fix errors")
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := requestContext(cmd)
	defer cancel()
	res, err := rt.client.Create(ctx, in)
	if err != nil {
		notify(api.Message(err, msgAddFailed))
		return fmt.Errorf("adding expense: %w", err)
	}
	fmt.Println("\n  " + cli.RenderMessage(orDefault(res.Message, "Expense added")))

	ctl, err := loadView(cmd, rt)
	if err != nil {
		return err
	}
	printList(ctl, rt.currency(), 0)
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
