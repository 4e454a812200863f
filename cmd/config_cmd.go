// Package cmd implements the spendwatch CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwatch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagHost != "" {
		cfg.API.Host = flagHost
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [API]")
	fmt.Printf("    Host: %s\n", cfg.API.Host)
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency:         %s\n", cfg.General.Currency)
	fmt.Printf("    Default category: %s\n", cfg.General.DefaultCategory)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Auto refresh:     %v\n", cfg.TUI.AutoRefresh)
	fmt.Printf("    Refresh interval: %ds\n", cfg.TUI.RefreshIntervalSec)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    File:  %s\n", cfg.LogPath())
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Printf("  Journal: %s\n", config.JournalPath())

	if err := cfg.Validate(); err != nil {
		fmt.Println()
		fmt.Println("  Problems:")
		fmt.Printf("    %v\n", err)
	}
	fmt.Println()
	fmt.Println("  Run `spendwatch setup` to reconfigure.")
	return nil
}
