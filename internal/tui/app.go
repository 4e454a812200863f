// Package tui provides the interactive Bubble Tea dashboard for spendwatch.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/spendwatch/internal/api"
	"github.com/theirongolddev/spendwatch/internal/model"
	"github.com/theirongolddev/spendwatch/internal/store"
	"github.com/theirongolddev/spendwatch/internal/tui/components"
	"github.com/theirongolddev/spendwatch/internal/tui/theme"
	"github.com/theirongolddev/spendwatch/internal/view"
)

// Backend is the remote API the dashboard drives.
type Backend interface {
	List(ctx context.Context) ([]model.Expense, error)
	Get(ctx context.Context, id string) (model.Expense, error)
	Create(ctx context.Context, in model.ExpenseInput) (api.Result, error)
	Update(ctx context.Context, id string, in model.ExpenseInput) (api.Result, error)
	Delete(ctx context.Context, id string) (api.Result, error)
}

// ActivityLog supplies recent journal entries for the Activity tab.
type ActivityLog interface {
	Recent(limit int) ([]store.Entry, error)
}

// Options configures a new App.
type Options struct {
	Backend  Backend
	Activity ActivityLog // nil disables the Activity tab contents
	Logger   *zap.Logger

	Host     string
	Currency string
	Search   string
	Category string

	AutoRefresh     bool
	RefreshInterval time.Duration

	// NeedSetup starts the dashboard with the first-run setup form.
	NeedSetup bool
	// OnSetup persists the setup answers; called once when the form completes.
	OnSetup func(SetupValues) error

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Fallback notifications when the server gives no message.
const (
	msgFetchFailed  = "Failed to fetch expenses"
	msgLoadFailed   = "Failed to load expense data"
	msgAddFailed    = "Failed to add expense"
	msgUpdateFailed = "Failed to update"
	msgDeleteFailed = "Failed to delete expense"
	msgFixErrors    = "Please fix errors"
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5
	toastDuration    = 4 * time.Second
	tickInterval     = time.Second
	activityLimit    = 100
)

// listMsg carries the outcome of a list fetch tagged with its sequence.
type listMsg struct {
	seq  uint64
	list []model.Expense
	err  error
}

// expenseMsg carries the record loaded for the edit route.
type expenseMsg struct {
	id      string
	expense model.Expense
	err     error
}

// mutationMsg carries the outcome of a create, update or delete.
type mutationMsg struct {
	op  string
	id  string
	res api.Result
	err error
}

// activityMsg carries journal entries for the Activity tab.
type activityMsg struct {
	entries []store.Entry
	err     error
}

type tickMsg time.Time

type toast struct {
	kind  components.ToastKind
	text  string
	until time.Time
}

// App is the root Bubble Tea model.
type App struct {
	opts Options
	log  *zap.Logger

	ctl         view.Controller
	lastRefresh time.Time
	initFetch   tea.Cmd

	// Routing
	route      string
	routing    bool
	routeInput textinput.Model

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	toast     *toast
	spinner   spinner.Model

	// Expenses tab
	cursor      int
	searching   bool
	searchInput textinput.Model

	// Add / edit form and delete confirmation
	form   *expenseForm
	dialog *deleteDialog

	// Activity tab
	activity    []store.Entry
	activityErr error

	// First-run setup
	setupForm *huh.Form
	setupVals *SetupValues

	autoRefresh     bool
	refreshInterval time.Duration
}

// NewApp creates the dashboard model.
func NewApp(opts Options) App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RefreshInterval < 10*time.Second {
		opts.RefreshInterval = 30 * time.Second
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		opts:            opts,
		log:             opts.Logger,
		route:           RouteHome,
		spinner:         sp,
		autoRefresh:     opts.AutoRefresh,
		refreshInterval: opts.RefreshInterval,
		searchInput:     newSearchInput(),
		routeInput:      newRouteInput(),
	}
	a.ctl = view.New(opts.Category).ApplyFilter(opts.Search, opts.Category, opts.Now())
	a.searchInput.SetValue(opts.Search)

	if opts.NeedSetup {
		a.setupVals = defaultSetupValues(opts.Host)
		a.setupForm = NewSetupForm(a.setupVals)
	}

	// Start the first fetch here so its sequence number is recorded; Init
	// cannot change the model.
	var fetch tea.Cmd
	a, fetch = a.fetchList()
	a.initFetch = fetch
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		a.initFetch,
		a.spinner.Tick,
		tickCmd(),
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width)
		}
		if a.form != nil && a.form.form != nil {
			a.form.form = a.form.form.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.updateKey(msg)

	case listMsg:
		return a.receiveList(msg), nil

	case expenseMsg:
		return a.receiveExpense(msg)

	case mutationMsg:
		return a.receiveMutation(msg)

	case activityMsg:
		a.activity = msg.entries
		a.activityErr = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.ctl.Loading() || (a.form != nil && a.form.busy()) {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		// Keep the spinner alive for the next load without redrawing.
		return a, tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg { return a.spinner.Tick() })

	case tickMsg:
		return a.onTick(time.Time(msg))
	}

	return a.forwardToForms(msg)
}

// forwardToForms passes non-key messages (cursor blinks, form internals) to
// whichever huh form is active.
func (a App) forwardToForms(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case a.setupForm != nil:
		return a.updateSetupForm(msg)
	case a.dialog != nil:
		return a.updateDialog(msg)
	case a.form != nil && a.form.form != nil:
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.setupForm != nil {
		if key == "esc" {
			a.setupForm = nil
			a.setupVals = nil
			return a, nil
		}
		return a.updateSetupForm(msg)
	}
	if a.routing {
		return a.updateRoutePrompt(msg)
	}
	if a.dialog != nil {
		if key == "esc" {
			a.dialog = nil
			return a, nil
		}
		return a.updateDialog(msg)
	}

	switch routeOf(a.route).kind {
	case routeAdd, routeEdit:
		if key == "esc" {
			return a.navigate(RouteHome)
		}
		if a.form != nil && a.form.form != nil {
			return a.updateForm(msg)
		}
		return a, nil
	case routeNotFound:
		switch key {
		case "enter", "esc", "h":
			return a.navigate(RouteHome)
		case ":":
			return a.openRoutePrompt()
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	if a.searching {
		return a.updateSearch(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.activeTab == tabExpenses {
		if next, cmd, handled := a.updateExpensesKey(key); handled {
			return next, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case ":":
		return a.openRoutePrompt()
	case "/":
		return a.startSearch()
	case "c":
		return a.cycleCategory(1), nil
	case "C":
		return a.cycleCategory(-1), nil
	case "x":
		a.searchInput.SetValue("")
		a.ctl = a.ctl.ApplyFilter("", "All", a.opts.Now())
		a.cursor = 0
		return a, nil
	case "n", "+":
		return a.navigate(RouteAdd)
	case "r":
		if a.ctl.Loading() {
			return a, nil
		}
		return a.fetchList()
	case "R":
		a.autoRefresh = !a.autoRefresh
		return a, nil
	case "left", "shift+tab":
		return a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
	case "right", "tab":
		return a.switchTab((a.activeTab + 1) % len(components.Tabs))
	}
	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			return a.switchTab(idx)
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.route != RouteHome || a.dialog != nil || a.setupForm != nil || a.showHelp {
		return a, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabExpenses && a.cursor > 0 {
			a.cursor--
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabExpenses && a.cursor < len(a.ctl.Filtered())-1 {
			a.cursor++
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				return a.switchTab(tab)
			}
		}
	}
	return a, nil
}

func (a App) switchTab(idx int) (App, tea.Cmd) {
	a.activeTab = idx
	if idx == tabActivity {
		return a, a.loadActivity()
	}
	return a, nil
}

func (a App) onTick(now time.Time) (tea.Model, tea.Cmd) {
	if a.toast != nil && now.After(a.toast.until) {
		a.toast = nil
	}
	a.ctl = a.ctl.Rollover(now)
	cmds := []tea.Cmd{tickCmd()}
	if a.autoRefresh && a.route == RouteHome && !a.ctl.Loading() &&
		now.Sub(a.lastRefresh) >= a.refreshInterval {
		var fetch tea.Cmd
		a, fetch = a.fetchList()
		cmds = append(cmds, fetch)
	}
	return a, tea.Batch(cmds...)
}

// ─── Remote calls ──────────────────────────────────────────────

// fetchList starts a list fetch with a fresh sequence number.
func (a App) fetchList() (App, tea.Cmd) {
	var seq uint64
	a.ctl, seq = a.ctl.BeginFetch()
	backend := a.opts.Backend
	return a, func() tea.Msg {
		list, err := backend.List(context.Background())
		return listMsg{seq: seq, list: list, err: err}
	}
}

func (a App) receiveList(msg listMsg) App {
	if a.ctl.Stale(msg.seq) {
		a.log.Debug("discarding stale list response", zap.Uint64("seq", msg.seq))
		return a
	}
	if msg.err != nil {
		a.ctl = a.ctl.ReceiveError(msg.seq, msgFetchFailed)
		return a.notify(components.ToastError, msgFetchFailed)
	}
	a.ctl = a.ctl.ReceiveList(msg.seq, msg.list, a.opts.Now())
	a.lastRefresh = a.opts.Now()
	a.clampCursor()
	return a
}

func (a App) loadExpense(id string) tea.Cmd {
	backend := a.opts.Backend
	return func() tea.Msg {
		e, err := backend.Get(context.Background(), id)
		return expenseMsg{id: id, expense: e, err: err}
	}
}

func (a App) loadActivity() tea.Cmd {
	src := a.opts.Activity
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := src.Recent(activityLimit)
		return activityMsg{entries: entries, err: err}
	}
}

func createCmd(b Backend, in model.ExpenseInput) tea.Cmd {
	return func() tea.Msg {
		res, err := b.Create(context.Background(), in)
		return mutationMsg{op: api.OpCreate, res: res, err: err}
	}
}

func updateCmd(b Backend, id string, in model.ExpenseInput) tea.Cmd {
	return func() tea.Msg {
		res, err := b.Update(context.Background(), id, in)
		return mutationMsg{op: api.OpUpdate, id: id, res: res, err: err}
	}
}

func deleteCmd(b Backend, id string) tea.Cmd {
	return func() tea.Msg {
		res, err := b.Delete(context.Background(), id)
		return mutationMsg{op: api.OpDelete, id: id, res: res, err: err}
	}
}

func (a App) receiveMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	switch msg.op {
	case api.OpCreate, api.OpUpdate:
		if a.form == nil {
			// The user left the form before the response arrived.
			if msg.err == nil {
				return a.notify(components.ToastSuccess, successText(msg)), nil
			}
			return a, nil
		}
		if msg.err != nil {
			fallback := msgAddFailed
			if msg.op == api.OpUpdate {
				fallback = msgUpdateFailed
			}
			a = a.notify(components.ToastError, api.Message(msg.err, fallback))
			return a, a.form.reopen(a.formWidth())
		}
		a = a.notify(components.ToastSuccess, successText(msg))
		return a.navigate(RouteHome)

	case api.OpDelete:
		if msg.err != nil {
			a = a.notify(components.ToastError, msgDeleteFailed)
			if a.dialog != nil && a.dialog.id == msg.id {
				return a, a.dialog.reopen()
			}
			return a, nil
		}
		if a.dialog != nil && a.dialog.id == msg.id {
			a.dialog = nil
		}
		a = a.notify(components.ToastSuccess, successText(msg))
		var fetch tea.Cmd
		a, fetch = a.fetchList()
		return a, tea.Batch(fetch, a.loadActivity())
	}
	return a, nil
}

func successText(msg mutationMsg) string {
	if msg.res.Message != "" {
		return msg.res.Message
	}
	switch msg.op {
	case api.OpCreate:
		return "Expense added"
	case api.OpUpdate:
		return "Expense updated"
	default:
		return "Expense deleted"
	}
}

func (a App) notify(kind components.ToastKind, text string) App {
	a.toast = &toast{kind: kind, text: text, until: a.opts.Now().Add(toastDuration)}
	return a
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ─── Search & filters ──────────────────────────────────────────

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search expenses by title"
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = 40
	return ti
}

func (a App) startSearch() (tea.Model, tea.Cmd) {
	a.searching = true
	a.searchInput.Focus()
	return a, textinput.Blink
}

// updateSearch applies the filter as the user types.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.searching = false
		a.searchInput.Blur()
		return a, nil
	case "esc":
		a.searching = false
		a.searchInput.Blur()
		a.searchInput.SetValue("")
		a.ctl = a.ctl.ApplyFilter("", a.ctl.Category(), a.opts.Now())
		a.clampCursor()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.ctl = a.ctl.ApplyFilter(a.searchInput.Value(), a.ctl.Category(), a.opts.Now())
	a.cursor = 0
	return a, cmd
}

// cycleCategory steps through the category filter options.
func (a App) cycleCategory(step int) App {
	opts := a.ctl.CategoryOptions()
	idx := 0
	for i, o := range opts {
		if o == a.ctl.Category() {
			idx = i
			break
		}
	}
	idx = (idx + step + len(opts)) % len(opts)
	a.ctl = a.ctl.ApplyFilter(a.ctl.Search(), opts[idx], a.opts.Now())
	a.cursor = 0
	return a
}

func (a *App) clampCursor() {
	if n := len(a.ctl.Filtered()); a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// ─── Layout ────────────────────────────────────────────────────

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

func (a App) formWidth() int {
	w := a.contentWidth() - 8
	if w > 70 {
		w = 70
	}
	if w < 40 {
		w = 40
	}
	return w
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.setupForm != nil {
		return a.viewSetup()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  spendwatch needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.tabForHeader(), w) + "\n" + a.renderFilterLine(w)

	var footer []string
	if a.routing {
		footer = append(footer, lipgloss.NewStyle().Background(t.Surface).Width(w).Render(a.routeInput.View()))
	}
	if a.toast != nil {
		footer = append(footer, components.RenderToast(a.toast.kind, a.toast.text, w))
	}
	refreshed := ""
	if !a.lastRefresh.IsZero() {
		refreshed = a.lastRefresh.Format("15:04:05")
	}
	footer = append(footer, components.RenderStatusBar(w, components.StatusInfo{
		Route:       a.route,
		Host:        a.opts.Host,
		LastRefresh: refreshed,
		Refreshing:  a.ctl.Loading(),
		AutoRefresh: a.autoRefresh,
	}))
	footerStr := strings.Join(footer, "\n")

	contentH := h - lipgloss.Height(header) - lipgloss.Height(footerStr)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch r := routeOf(a.route); r.kind {
	case routeAdd, routeEdit:
		content = a.renderForm(cw)
	case routeNotFound:
		content = a.renderNotFound(cw, contentH)
	default:
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw)
		case tabExpenses:
			content = a.renderExpensesTab(cw, contentH)
		case tabActivity:
			content = a.renderActivityTab(cw, contentH)
		}
		if a.dialog != nil {
			content = a.renderDialog(cw, contentH)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, footerStr)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// tabForHeader returns the highlighted tab, or -1 off the dashboard route.
func (a App) tabForHeader() int {
	if a.route != RouteHome {
		return -1
	}
	return a.activeTab
}

func (a App) renderFilterLine(w int) string {
	t := theme.Active
	pill := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	var line string
	if a.searching {
		line = " " + a.searchInput.View()
	} else {
		search := a.ctl.Search()
		if search == "" {
			search = "any title"
		}
		line = pill.Render(" search ") + accent.Render(search) +
			pill.Render(" │ category ") + accent.Render(a.ctl.Category()) +
			pill.Render(fmt.Sprintf(" │ %d of %d ", len(a.ctl.Filtered()), len(a.ctl.Expenses())))
	}
	if a.ctl.Loading() {
		line += pill.Render(" ") + a.spinner.View()
	}
	return lipgloss.NewStyle().Background(t.Surface).Width(w).Render(line)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o e a", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move in the expense list"},
			{":", "Go to route (/, /add, /edit/<id>)"},
		}},
		{"Expenses", []struct{ key, desc string }{
			{"/", "Search by title"},
			{"c C", "Next / previous category"},
			{"x", "Clear filters"},
			{"n", "Add expense"},
			{"Enter", "Edit selected"},
			{"d", "Delete selected"},
		}},
		{"General", []struct{ key, desc string }{
			{"r", "Refresh"},
			{"R", "Toggle auto-refresh"},
			{"Esc", "Back / Cancel"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(s.name))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ───────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
