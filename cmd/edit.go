package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwatch/internal/api"
	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/model"
)

var editFields expenseFields

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an expense",
	Long: "Edit an expense. Flags replace individual fields; with no flags the " +
		"current values are shown in a form.",
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	// Flag values override the fetched record, so they bind to a scratch copy.
	addExpenseFlags(editCmd, &editFields)
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id := args[0]

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	current, err := fetchExpense(cmd, rt, id)
	if err != nil {
		notify(msgLoadFailed)
		return fmt.Errorf("loading expense %s: %w", id, err)
	}

	fields := expenseFields{
		Title:    current.Title,
		Amount:   current.Amount.String(),
		Category: string(current.Category),
	}
	changed := false
	for name, dst := range map[string]*string{
		"title":    &fields.Title,
		"amount":   &fields.Amount,
		"category": &fields.Category,
	} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
			changed = true
		}
	}
	if !changed {
		if !interactive() {
			return errors.New("nothing to change; pass --title, --amount or --category")
		}
		if err := runExpenseForm("Edit Expense", &fields); err != nil {
			return err
		}
	}

	in, err := fields.input()
	if err != nil {
		notify("Please fix errors")
		return err
	}

	res, err := updateExpense(cmd, rt, id, in)
	if err != nil {
		notify(api.Message(err, msgUpdateFailed))
		return fmt.Errorf("updating expense %s: %w", id, err)
	}
	fmt.Println("\n  " + cli.RenderMessage(orDefault(res.Message, "Expense updated")))

	ctl, err := loadView(cmd, rt)
	if err != nil {
		return err
	}
	printList(ctl, rt.currency(), 0)
	return nil
}

// fetchExpense and updateExpense each get their own deadline; the form in
// between runs on the user's time.
func fetchExpense(cmd *cobra.Command, rt *runtime, id string) (model.Expense, error) {
	ctx, cancel := requestContext(cmd)
	defer cancel()
	return rt.client.Get(ctx, id)
}

func updateExpense(cmd *cobra.Command, rt *runtime, id string, in model.ExpenseInput) (api.Result, error) {
	ctx, cancel := requestContext(cmd)
	defer cancel()
	return rt.client.Update(ctx, id, in)
}
