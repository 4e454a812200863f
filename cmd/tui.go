package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/spendwatch/internal/config"
	"github.com/theirongolddev/spendwatch/internal/tui"
	"github.com/theirongolddev/spendwatch/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// The dashboard owns the terminal; keep logs in the file only.
	verbose := flagVerbose
	flagVerbose = false
	rt, err := newRuntime()
	flagVerbose = verbose
	if err != nil {
		return err
	}
	defer rt.Close()

	theme.SetActive(rt.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	opts := tui.Options{
		Backend:         rt.client,
		Logger:          rt.log,
		Host:            rt.client.Host(),
		Currency:        rt.currency(),
		Search:          flagSearch,
		Category:        rt.category(),
		AutoRefresh:     rt.cfg.TUI.AutoRefresh,
		RefreshInterval: time.Duration(rt.cfg.TUI.RefreshIntervalSec) * time.Second,
		NeedSetup:       !config.Exists(),
		OnSetup: func(v tui.SetupValues) error {
			cfg := rt.cfg
			v.Apply(&cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return config.Save(cfg)
		},
	}
	// A nil *store.Journal must not become a non-nil interface.
	if rt.journal != nil {
		opts.Activity = rt.journal
	}

	rt.log.Info("starting dashboard", zap.String("host", opts.Host))
	p := tea.NewProgram(tui.NewApp(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
