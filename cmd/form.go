package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/spendwatch/internal/model"
	"github.com/theirongolddev/spendwatch/internal/validate"
)

// errNotInteractive is returned when a form would be needed but there is no
// terminal to show it on.
var errNotInteractive = errors.New("missing fields and no terminal for the form; pass --title, --amount and --category")

// expenseFields holds raw form values.
type expenseFields struct {
	Title    string
	Amount   string
	Category string
}

func (f expenseFields) complete() bool {
	return f.Title != "" && f.Amount != "" && f.Category != ""
}

// validator copies the values into a validate.Form.
func (f expenseFields) validator() *validate.Form {
	v := &validate.Form{}
	v.Set(validate.Title, f.Title)
	v.Set(validate.Amount, f.Amount)
	v.Set(validate.Category, f.Category)
	return v
}

// input validates f and returns the payload, or an error listing every
// field problem.
func (f expenseFields) input() (model.ExpenseInput, error) {
	v := f.validator()
	in, err := v.Input()
	if err == nil {
		return in, nil
	}
	if !errors.Is(err, validate.ErrInvalid) {
		return model.ExpenseInput{}, err
	}
	var errs []error
	for _, name := range validate.Fields {
		if msg := v.Error(name); msg != "" {
			errs = append(errs, fmt.Errorf("%s: %s", name, msg))
		}
	}
	return model.ExpenseInput{}, fmt.Errorf("%w\n%w", err, errors.Join(errs...))
}

// runExpenseForm asks for the expense fields with inline validation.
func runExpenseForm(heading string, f *expenseFields) error {
	catOpts := []huh.Option[string]{huh.NewOption("Select category", "")}
	for _, c := range model.Categories {
		info := c.Info()
		catOpts = append(catOpts, huh.NewOption(info.Glyph+" "+info.Label, string(c)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(heading),
			huh.NewInput().
				Title("Title").
				Placeholder("e.g. Groceries").
				Value(&f.Title).
				Validate(check(validate.Title)),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&f.Amount).
				Validate(check(validate.Amount)),
			huh.NewSelect[string]().
				Title("Category").
				Options(catOpts...).
				Value(&f.Category).
				Validate(check(validate.Category)),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("expense form: %w", err)
	}
	return nil
}

func check(field string) func(string) error {
	return func(s string) error {
		if msg := validate.Field(field, s); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}
