package tui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendwatch/internal/cli"
	"github.com/theirongolddev/spendwatch/internal/config"
	"github.com/theirongolddev/spendwatch/internal/tui/components"
	"github.com/theirongolddev/spendwatch/internal/tui/theme"
)

var amountPreview = decimal.NewFromFloat(123456.5)

// SetupValues holds the answers collected by the setup form.
type SetupValues struct {
	Host        string
	Currency    string
	Theme       string
	AutoRefresh bool
	RefreshSec  string
}

func defaultSetupValues(host string) *SetupValues {
	d := config.DefaultConfig()
	if host == "" {
		host = d.API.Host
	}
	return &SetupValues{
		Host:        host,
		Currency:    d.General.Currency,
		Theme:       d.Appearance.Theme,
		AutoRefresh: d.TUI.AutoRefresh,
		RefreshSec:  strconv.Itoa(d.TUI.RefreshIntervalSec),
	}
}

// SetupValuesFrom seeds the form from an existing config.
func SetupValuesFrom(cfg config.Config) *SetupValues {
	return &SetupValues{
		Host:        cfg.API.Host,
		Currency:    cfg.General.Currency,
		Theme:       cfg.Appearance.Theme,
		AutoRefresh: cfg.TUI.AutoRefresh,
		RefreshSec:  strconv.Itoa(cfg.TUI.RefreshIntervalSec),
	}
}

// Apply copies the answers onto cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	cfg.API.Host = strings.TrimRight(strings.TrimSpace(v.Host), "/")
	if c := strings.TrimSpace(v.Currency); c != "" {
		cfg.General.Currency = c
	}
	cfg.Appearance.Theme = v.Theme
	cfg.TUI.AutoRefresh = v.AutoRefresh
	if n, err := strconv.Atoi(strings.TrimSpace(v.RefreshSec)); err == nil {
		cfg.TUI.RefreshIntervalSec = n
	}
}

// NewSetupForm builds the setup form bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	var themeOpts []huh.Option[string]
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to spendwatch").
				Description("A terminal dashboard for your expense tracker.\nLet's point it at your server."),
			huh.NewInput().
				Title("API host").
				Description("Base URL of the expense server").
				Placeholder("http://localhost:3000").
				Value(&v.Host).
				Validate(validateHost),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				CharLimit(4).
				Value(&v.Currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
			huh.NewConfirm().
				Title("Refresh the dashboard automatically?").
				Value(&v.AutoRefresh),
			huh.NewInput().
				Title("Refresh interval (seconds)").
				Value(&v.RefreshSec).
				Validate(validateInterval),
		),
	).WithTheme(formTheme())
}

func validateHost(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("enter an http(s) URL")
	}
	return nil
}

func validateInterval(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < config.MinRefreshInterval {
		return fmt.Errorf("at least %d seconds", config.MinRefreshInterval)
	}
	return nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		return a.finishSetup(), nil
	case huh.StateAborted:
		a.setupForm = nil
		a.setupVals = nil
		return a, nil
	}
	return a, cmd
}

// finishSetup applies the answers that take effect immediately and hands
// them to OnSetup for saving.
func (a App) finishSetup() App {
	v := *a.setupVals
	a.setupForm = nil
	a.setupVals = nil

	theme.SetActive(v.Theme)
	if c := strings.TrimSpace(v.Currency); c != "" {
		a.opts.Currency = c
	}
	a.autoRefresh = v.AutoRefresh

	if a.opts.OnSetup != nil {
		if err := a.opts.OnSetup(v); err != nil {
			a.log.Sugar().Warnw("saving setup", "err", err)
			return a.notify(components.ToastError, "Could not save config: "+err.Error())
		}
	}
	if strings.TrimRight(strings.TrimSpace(v.Host), "/") != strings.TrimRight(a.opts.Host, "/") {
		return a.notify(components.ToastInfo, "Saved. The new host is used from the next launch")
	}
	return a.notify(components.ToastSuccess, "Saved to "+config.ConfigPath())
}

func (a App) viewSetup() string {
	t := theme.Active
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render(
		"Esc skips setup. Run `spendwatch setup` anytime to reconfigure. Currency preview: " +
			cli.FormatAmount(a.setupVals.Currency, amountPreview))
	body := lipgloss.JoinVertical(lipgloss.Left, a.setupForm.View(), "", hint)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body,
		lipgloss.WithWhitespaceBackground(t.Background))
}
