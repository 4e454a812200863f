package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/model"
	"github.com/theirongolddev/spendwatch/internal/tui/components"
	"github.com/theirongolddev/spendwatch/internal/tui/theme"
	"github.com/theirongolddev/spendwatch/internal/validate"
)

type formMode int

const (
	formAdd formMode = iota
	formEdit
)

// expenseForm backs the add and edit routes. It lives behind a pointer so
// the huh fields stay bound to the same strings as App is copied.
type expenseForm struct {
	mode       formMode
	id         string
	loading    bool // edit: waiting for the record
	loadFailed bool
	submitting bool

	title    string
	amount   string
	category string
	confirm  bool

	errors map[string]string
	form   *huh.Form
}

func newExpenseForm(mode formMode, id string) *expenseForm {
	return &expenseForm{mode: mode, id: id, confirm: true}
}

func (f *expenseForm) busy() bool { return f.loading || f.submitting }

// fill pre-populates the fields from an existing record.
func (f *expenseForm) fill(e model.Expense) {
	f.title = e.Title
	f.amount = e.Amount.String()
	f.category = string(e.Category)
}

// build (re)creates the huh form over the current values.
func (f *expenseForm) build(width int) tea.Cmd {
	f.confirm = true

	catOpts := []huh.Option[string]{huh.NewOption("Select category", "")}
	for _, c := range model.Categories {
		info := c.Info()
		catOpts = append(catOpts, huh.NewOption(info.Glyph+" "+info.Label, string(c)))
	}

	submit := "Add expense?"
	if f.mode == formEdit {
		submit = "Save changes?"
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("e.g. Groceries").
				CharLimit(validate.MaxTitleLen+10).
				Value(&f.title).
				Validate(fieldCheck(validate.Title)),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&f.amount).
				Validate(fieldCheck(validate.Amount)),
			huh.NewSelect[string]().
				Title("Category").
				Options(catOpts...).
				Value(&f.category).
				Validate(fieldCheck(validate.Category)),
			huh.NewConfirm().
				Title(submit).
				Affirmative("Save").
				Negative("Cancel").
				Value(&f.confirm),
		),
	).WithTheme(formTheme()).WithWidth(width).WithShowHelp(true)

	return f.form.Init()
}

// reopen returns the form to editing after a failed submit.
func (f *expenseForm) reopen(width int) tea.Cmd {
	f.submitting = false
	return f.build(width)
}

// validator copies the field values into a validate.Form.
func (f *expenseForm) validator() *validate.Form {
	v := &validate.Form{}
	v.Set(validate.Title, f.title)
	v.Set(validate.Amount, strings.TrimSpace(f.amount))
	v.Set(validate.Category, f.category)
	return v
}

func fieldCheck(field string) func(string) error {
	return func(s string) error {
		if msg := validate.Field(field, s); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

func formTheme() *huh.Theme {
	p := theme.Active
	t := huh.ThemeBase()
	t.Focused.Title = t.Focused.Title.Foreground(p.Accent).Bold(true)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p.Accent)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(p.Background).Background(p.Accent)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(p.TextMuted).Background(p.SurfaceHover)
	return t
}

func (a App) receiveExpense(msg expenseMsg) (tea.Model, tea.Cmd) {
	f := a.form
	if f == nil || f.mode != formEdit || f.id != msg.id {
		return a, nil
	}
	f.loading = false
	if msg.err != nil {
		a.log.Sugar().Debugw("edit load failed", "id", msg.id, "err", msg.err)
		f.loadFailed = true
		return a.notify(components.ToastError, msgLoadFailed), nil
	}
	f.fill(msg.expense)
	return a, f.build(a.formWidth())
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := a.form
	if f.busy() {
		return a, nil
	}
	next, cmd := f.form.Update(msg)
	if hf, ok := next.(*huh.Form); ok {
		f.form = hf
	}

	switch f.form.State {
	case huh.StateCompleted:
		if !f.confirm {
			return a.navigate(RouteHome)
		}
		return a.submitForm()
	case huh.StateAborted:
		return a.navigate(RouteHome)
	}
	return a, cmd
}

// submitForm validates every field and, when the form is clean, issues
// exactly one create or update request.
func (a App) submitForm() (App, tea.Cmd) {
	f := a.form
	if f == nil || f.busy() || f.loadFailed {
		return a, nil
	}
	v := f.validator()
	in, err := v.Input()
	if err != nil {
		f.errors = v.Errors()
		a = a.notify(components.ToastError, msgFixErrors)
		return a, f.build(a.formWidth())
	}
	f.errors = nil
	f.submitting = true

	if f.mode == formEdit {
		return a, updateCmd(a.opts.Backend, f.id, in)
	}
	return a, createCmd(a.opts.Backend, in)
}

func (a App) renderForm(cw int) string {
	t := theme.Active
	f := a.form

	heading := "Add Expense"
	if f != nil && f.mode == formEdit {
		heading = "Edit Expense"
	}

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	var body string
	switch {
	case f == nil:
		body = ""
	case f.loading:
		body = a.spinner.View() + muted.Render(" Loading expense...")
	case f.loadFailed:
		body = errStyle.Render(msgLoadFailed) + "\n\n" + muted.Render("Esc to go back")
	case f.submitting:
		body = a.spinner.View() + muted.Render(" Saving...")
	default:
		var b strings.Builder
		b.WriteString(f.form.View())
		for _, name := range validate.Fields {
			if msg, ok := f.errors[name]; ok {
				b.WriteString("\n")
				b.WriteString(errStyle.Render(fmt.Sprintf("%s: %s", name, msg)))
			}
		}
		b.WriteString("\n")
		b.WriteString(muted.Render("Esc to cancel"))
		body = b.String()
	}

	cardW := min(cw, a.formWidth()+6)
	card := components.ContentCard(heading, body, cardW)
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, "\n"+card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Delete confirmation ───────────────────────────────────────

type deleteDialog struct {
	id      string
	title   string
	amount  string
	confirm bool
	pending bool
	form    *huh.Form
}

func newDeleteDialog(e model.Expense, currency string) *deleteDialog {
	return &deleteDialog{id: e.ID, title: e.Title, amount: cli.FormatAmount(currency, e.Amount)}
}

func (d *deleteDialog) build() tea.Cmd {
	d.confirm = false
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q (%s)?", cli.Truncate(d.title, 40), d.amount)).
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&d.confirm),
		),
	).WithTheme(formTheme()).WithShowHelp(false)
	return d.form.Init()
}

// reopen shows the dialog again after a failed delete.
func (d *deleteDialog) reopen() tea.Cmd {
	d.pending = false
	return d.build()
}

func (a App) openDeleteDialog(e model.Expense) (App, tea.Cmd) {
	a.dialog = newDeleteDialog(e, a.opts.Currency)
	return a, a.dialog.build()
}

func (a App) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	d := a.dialog
	if d.pending {
		return a, nil
	}
	next, cmd := d.form.Update(msg)
	if hf, ok := next.(*huh.Form); ok {
		d.form = hf
	}
	switch d.form.State {
	case huh.StateCompleted:
		if d.confirm {
			return a.confirmDelete()
		}
		a.dialog = nil
		return a, nil
	case huh.StateAborted:
		a.dialog = nil
		return a, nil
	}
	return a, cmd
}

// confirmDelete issues the delete request. The dialog stays up until the
// response arrives.
func (a App) confirmDelete() (App, tea.Cmd) {
	d := a.dialog
	if d == nil || d.pending {
		return a, nil
	}
	d.pending = true
	return a, deleteCmd(a.opts.Backend, d.id)
}

func (a App) renderDialog(cw, h int) string {
	t := theme.Active
	d := a.dialog

	var body string
	if d.pending {
		body = a.spinner.View() + lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(" Deleting...")
	} else {
		body = d.form.View()
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		BorderBackground(t.Background).
		Background(t.Surface).
		Padding(1, 2).
		Width(min(cw-4, 60)).
		Render(body)

	return lipgloss.Place(cw, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
