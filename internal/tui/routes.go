package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/tui/theme"
)

// Routes understood by the dashboard.
const (
	RouteHome = "/"
	RouteAdd  = "/add"

	editPrefix = "/edit/"
)

type routeKind int

const (
	routeHomeKind routeKind = iota
	routeAdd
	routeEdit
	routeNotFound
)

type parsedRoute struct {
	kind routeKind
	id   string
}

// EditRoute returns the edit route for id.
func EditRoute(id string) string { return editPrefix + id }

// routeOf resolves a path. Anything unrecognised, including "/edit/" with
// no id, is not found.
func routeOf(path string) parsedRoute {
	switch {
	case path == RouteHome || path == "":
		return parsedRoute{kind: routeHomeKind}
	case path == RouteAdd:
		return parsedRoute{kind: routeAdd}
	case strings.HasPrefix(path, editPrefix):
		id := strings.TrimPrefix(path, editPrefix)
		if id == "" || strings.Contains(id, "/") {
			return parsedRoute{kind: routeNotFound}
		}
		return parsedRoute{kind: routeEdit, id: id}
	}
	return parsedRoute{kind: routeNotFound}
}

// navigate switches route and starts whatever the destination needs.
// The home route always refetches the list.
func (a App) navigate(path string) (App, tea.Cmd) {
	if path == "" {
		path = RouteHome
	}
	a.route = path
	a.dialog = nil
	a.routing = false
	a.showHelp = false

	switch r := routeOf(path); r.kind {
	case routeHomeKind:
		a.form = nil
		return a.fetchList()
	case routeAdd:
		a.form = newExpenseForm(formAdd, "")
		return a, a.form.build(a.formWidth())
	case routeEdit:
		a.form = newExpenseForm(formEdit, r.id)
		a.form.loading = true
		return a, a.loadExpense(r.id)
	default:
		a.form = nil
		return a, nil
	}
}

// ─── Route prompt ──────────────────────────────────────────────

func newRouteInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "/edit/<id>"
	ti.Prompt = "go to: "
	ti.CharLimit = 200
	ti.Width = 50
	return ti
}

func (a App) openRoutePrompt() (tea.Model, tea.Cmd) {
	a.routing = true
	a.routeInput.SetValue("")
	a.routeInput.Focus()
	return a, textinput.Blink
}

func (a App) updateRoutePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := strings.TrimSpace(a.routeInput.Value())
		a.routeInput.Blur()
		a.routing = false
		if path == "" {
			return a, nil
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return a.navigate(path)
	case "esc":
		a.routeInput.Blur()
		a.routing = false
		return a, nil
	}
	var cmd tea.Cmd
	a.routeInput, cmd = a.routeInput.Update(msg)
	return a, cmd
}

// ─── Not found ─────────────────────────────────────────────────

func (a App) renderNotFound(cw, h int) string {
	t := theme.Active

	big := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	title := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	body := lipgloss.JoinVertical(lipgloss.Center,
		big.Render("404"),
		"",
		title.Render("Page Not Found"),
		muted.Render("Nothing lives at "+cli.Truncate(a.route, 40)),
		"",
		accent.Render("Enter: back to expenses   : go to route"),
	)
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Padding(1, 4).
		Render(body)

	return lipgloss.Place(cw, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
