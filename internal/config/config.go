// Package config loads and saves spendwatch settings.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/spendwatch/internal/model"
)

// HostEnv overrides api.host when set.
const HostEnv = "SPENDWATCH_HOST"

// MinRefreshInterval is the shortest accepted TUI auto-refresh interval.
const MinRefreshInterval = 10

// Config holds all spendwatch configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	General    GeneralConfig    `toml:"general"`
	TUI        TUIConfig        `toml:"tui"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// APIConfig locates the remote expense API.
type APIConfig struct {
	Host string `toml:"host"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency        string `toml:"currency"`
	DefaultCategory string `toml:"default_category"`
}

// TUIConfig holds dashboard behaviour.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `toml:"file,omitempty"`
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{Host: "http://localhost:3000"},
		General: GeneralConfig{
			Currency:        "₹",
			DefaultCategory: "All",
		},
		TUI: TUIConfig{RefreshIntervalSec: 30},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{Level: "info"},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendwatch")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spendwatch")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// StateDir returns the XDG-compliant state directory, home of the log file
// and the activity journal.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendwatch")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "spendwatch")
}

// JournalPath returns the full path to the activity journal database.
func JournalPath() string {
	return filepath.Join(StateDir(), "activity.db")
}

// LogPath returns the configured log file, or the default under StateDir.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(StateDir(), "spendwatch.log")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A .env file in the working directory is loaded first, then HostEnv is
// applied on top of the file.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path. Missing files yield defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config file
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if host := os.Getenv(HostEnv); host != "" {
		cfg.API.Host = host
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes cfg to path with owner-only permissions.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Validate reports every problem with cfg joined into one error.
func (c Config) Validate() error {
	var errs []error
	u, err := url.Parse(c.API.Host)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.host %q must be an http(s) URL", c.API.Host))
	}
	if dc := c.General.DefaultCategory; dc != "All" && !model.Category(dc).Valid() {
		errs = append(errs, fmt.Errorf("general.default_category %q is not a known category", dc))
	}
	if c.TUI.RefreshIntervalSec < MinRefreshInterval {
		errs = append(errs, fmt.Errorf("tui.refresh_interval_sec must be at least %d", MinRefreshInterval))
	}
	return errors.Join(errs...)
}
