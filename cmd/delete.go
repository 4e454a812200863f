package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwatch/internal/cli"
)

var flagYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	if !flagYes {
		if !interactive() {
			return errors.New("refusing to delete without confirmation; pass --yes")
		}
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete expense %s?", id)).
			Description("This cannot be undone.").
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			fmt.Println("  Cancelled.")
			return nil
		}
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := requestContext(cmd)
	defer cancel()
	res, err := rt.client.Delete(ctx, id)
	if err != nil {
		notify(msgDeleteFailed)
		return fmt.Errorf("deleting expense %s: %w", id, err)
	}
	fmt.Println("\n  " + cli.RenderMessage(orDefault(res.Message, "Expense deleted")))

	ctl, err := loadView(cmd, rt)
	if err != nil {
		return err
	}
	printList(ctl, rt.currency(), 0)
	return nil
}
